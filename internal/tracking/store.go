// Package tracking records page views without keeping raw client addresses.
// IPs are salted and hashed before they reach the database, DNT is honoured
// and rows older than twelve months are purged.
package tracking

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/folio/internal/logging"
)

const (
	RetentionMonths  = 12
	VisitorPageLimit = 200
	recentLimit      = 50
	topPathLimit     = 10
	recordTimeout    = 5 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp);`

var skipPrefixes = []string{"/static/", "/images/", "/admin/", "/api/", "/favicon", "/privacy", "/healthz", "/live"}

type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopPaths         []PathStat `json:"top_paths"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

type Store struct {
	db     *sql.DB
	salt   string
	logger *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewSalt returns a random per-process salt for IP hashing.
func NewSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func Open(path, salt string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visitor database: %w", err)
	}
	// sqlite serialises writers anyway, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visitors table: %w", err)
	}
	return &Store{db: db, salt: salt, logger: logger, now: time.Now}, nil
}

// Close waits for in-flight background writes, then closes the database.
func (s *Store) Close() error {
	s.wg.Wait()
	return s.db.Close()
}

func (s *Store) Salt() string { return s.salt }

func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, logging.HashIP(ip, s.salt), userAgent, path, s.now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

func shouldTrack(c *gin.Context) bool {
	if c.Request.Method != "GET" {
		return false
	}
	path := c.Request.URL.Path
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return c.GetHeader("DNT") != "1"
}

// Middleware records page views in the background.
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldTrack(c) {
			c.Next()
			return
		}

		ip, ua, path := c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := s.Record(ctx, ip, ua, path); err != nil {
				s.logger.Warn("error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// Cleanup deletes visits older than the retention window.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().AddDate(0, -RetentionMonths, 0).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		s.logger.Info("privacy cleanup removed old visitor records", zap.Int64("rows", n))
	}
	return n, nil
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	weekAgo := now.AddDate(0, 0, -7).Unix()

	stats := &Stats{TopPaths: []PathStat{}, RecentVisitors: []Visit{}}

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}, &stats.VisitorsThisWeek},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?
	`, topPathLimit)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	topPaths, err := scanPathStats(rows)
	if err != nil {
		return nil, err
	}
	stats.TopPaths = topPaths

	recent, err := s.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

func scanPathStats(rows *sql.Rows) ([]PathStat, error) {
	defer rows.Close()

	paths := []PathStat{}
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	return paths, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	visits := []Visit{}
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
