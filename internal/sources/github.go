package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const GitHubAPI = "https://api.github.com"

type GitHubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	HTMLURL     string `json:"html_url"`
}

type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Stars       int       `json:"stargazers_count"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	recentRepoWindowYears = 5
	recentRepoLimit       = 6
)

type GitHub struct {
	client  *http.Client
	baseURL string
	user    string
	token   string
}

func NewGitHub(client *http.Client, baseURL, user, token string) *GitHub {
	if baseURL == "" {
		baseURL = GitHubAPI
	}
	return &GitHub{client: client, baseURL: baseURL, user: user, token: token}
}

func (g *GitHub) header() http.Header {
	h := http.Header{}
	h.Set("X-GitHub-Api-Version", "2022-11-28")
	if g.token != "" {
		h.Set("Authorization", "Bearer "+g.token)
	}
	return h
}

func (g *GitHub) User(ctx context.Context) (*GitHubUser, error) {
	var u GitHubUser
	endpoint := fmt.Sprintf("%s/users/%s", g.baseURL, url.PathEscape(g.user))
	if err := getJSON(ctx, g.client, endpoint, g.header(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Repos lists up to 50 repositories, most recently updated first.
func (g *GitHub) Repos(ctx context.Context) ([]Repo, error) {
	var repos []Repo
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=50", g.baseURL, url.PathEscape(g.user))
	if err := getJSON(ctx, g.client, endpoint, g.header(), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// RecentRepos keeps repositories updated in the last five years, at most six.
func (g *GitHub) RecentRepos(ctx context.Context, now time.Time) ([]Repo, error) {
	repos, err := g.Repos(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecent(repos, now), nil
}

func FilterRecent(repos []Repo, now time.Time) []Repo {
	cutoff := now.AddDate(-recentRepoWindowYears, 0, 0)
	out := []Repo{}
	for _, r := range repos {
		if !r.UpdatedAt.After(cutoff) {
			continue
		}
		out = append(out, r)
		if len(out) == recentRepoLimit {
			break
		}
	}
	return out
}

func (g *GitHub) Events(ctx context.Context) ([]Event, error) {
	var events []Event
	endpoint := fmt.Sprintf("%s/users/%s/events/public?per_page=30", g.baseURL, url.PathEscape(g.user))
	if err := getJSON(ctx, g.client, endpoint, g.header(), &events); err != nil {
		return nil, err
	}
	return events, nil
}
