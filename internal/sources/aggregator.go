package sources

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the live part of the page. Any field may be empty when its
// upstream was unavailable.
type Snapshot struct {
	FetchedAt time.Time   `json:"fetchedAt"`
	User      *GitHubUser `json:"user"`
	Repos     []Repo      `json:"repos"`
	Events    []Event     `json:"events"`
	Channel   Channel     `json:"channel"`
	Downloads *Downloads  `json:"downloads"`
}

// Clone returns a copy that shares no slices or pointers with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Repos = slices.Clone(s.Repos)
	for i := range out.Repos {
		out.Repos[i].Topics = slices.Clone(out.Repos[i].Topics)
	}
	out.Events = slices.Clone(s.Events)
	out.Channel.Posts = slices.Clone(s.Channel.Posts)
	if s.Downloads != nil {
		d := *s.Downloads
		out.Downloads = &d
	}
	return out
}

// DefaultFetchTimeout bounds one refresh of every source.
const DefaultFetchTimeout = 15 * time.Second

type Aggregator struct {
	github  *GitHub
	channel ChannelSource
	pypi    *PyPI
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	cached *Snapshot
}

type AggregatorOption func(*Aggregator)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

func WithFetchTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) { a.timeout = d }
}

// NewAggregator wires the live sources. Any source may be nil and is then
// skipped. A ttl of zero disables caching.
func NewAggregator(github *GitHub, channel ChannelSource, pypi *PyPI, ttl time.Duration, logger *zap.Logger, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		github:  github,
		channel: channel,
		pypi:    pypi,
		ttl:     ttl,
		timeout: DefaultFetchTimeout,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Snapshot returns cached data while it is fresh, otherwise fetches every
// source concurrently. Failures are logged and leave their field empty.
//
// The refresh runs detached from ctx so a caller that goes away cannot leave
// an empty snapshot in the cache for everyone else. A refresh that still hits
// its own deadline is returned but not cached.
func (a *Aggregator) Snapshot(ctx context.Context) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.cached != nil && a.ttl > 0 && now.Sub(a.cached.FetchedAt) < a.ttl {
		return a.cached.Clone()
	}

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()
	snap := a.fetch(fetchCtx, now)
	if fetchCtx.Err() != nil {
		a.logger.Warn("live refresh timed out, not caching", zap.Duration("timeout", a.timeout))
		return snap
	}
	a.cached = &snap
	return snap.Clone()
}

func (a *Aggregator) fetch(ctx context.Context, now time.Time) Snapshot {
	snap := Snapshot{
		FetchedAt: now,
		Repos:     []Repo{},
		Events:    []Event{},
		Channel:   Channel{Posts: []ChannelPost{}},
	}

	var g errgroup.Group
	if a.github != nil {
		g.Go(func() error {
			user, err := a.github.User(ctx)
			if err != nil {
				a.logger.Warn("github user fetch failed", zap.Error(err))
				return nil
			}
			snap.User = user
			return nil
		})
		g.Go(func() error {
			repos, err := a.github.RecentRepos(ctx, now)
			if err != nil {
				a.logger.Warn("github repos fetch failed", zap.Error(err))
				return nil
			}
			snap.Repos = repos
			return nil
		})
		g.Go(func() error {
			events, err := a.github.Events(ctx)
			if err != nil {
				a.logger.Warn("github events fetch failed", zap.Error(err))
				return nil
			}
			snap.Events = events
			return nil
		})
	}
	if a.channel != nil {
		g.Go(func() error {
			snap.Channel = a.channel.Channel(ctx)
			return nil
		})
	}
	if a.pypi != nil {
		g.Go(func() error {
			downloads, err := a.pypi.Recent(ctx)
			if err != nil {
				a.logger.Warn("pypi stats fetch failed", zap.Error(err))
				return nil
			}
			snap.Downloads = downloads
			return nil
		})
	}
	// Every branch absorbs its own error.
	_ = g.Wait()

	a.logger.Debug("live snapshot refreshed",
		zap.Bool("user", snap.User != nil),
		zap.Int("repos", len(snap.Repos)),
		zap.Int("events", len(snap.Events)),
		zap.Int("posts", len(snap.Channel.Posts)),
		zap.Bool("downloads", snap.Downloads != nil))
	return snap
}
