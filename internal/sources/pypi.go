package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const PyPIStatsAPI = "https://pypistats.org/api"

type Downloads struct {
	Package   string `json:"package"`
	LastDay   int    `json:"lastDay"`
	LastWeek  int    `json:"lastWeek"`
	LastMonth int    `json:"lastMonth"`
}

type PyPI struct {
	client  *http.Client
	baseURL string
	pkg     string
}

func NewPyPI(client *http.Client, baseURL, pkg string) *PyPI {
	if baseURL == "" {
		baseURL = PyPIStatsAPI
	}
	return &PyPI{client: client, baseURL: baseURL, pkg: pkg}
}

func (p *PyPI) Recent(ctx context.Context) (*Downloads, error) {
	var body struct {
		Package string `json:"package"`
		Data    struct {
			LastDay   int `json:"last_day"`
			LastWeek  int `json:"last_week"`
			LastMonth int `json:"last_month"`
		} `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/packages/%s/recent", p.baseURL, url.PathEscape(p.pkg))
	if err := getJSON(ctx, p.client, endpoint, nil, &body); err != nil {
		return nil, err
	}
	pkg := body.Package
	if pkg == "" {
		pkg = p.pkg
	}
	return &Downloads{
		Package:   pkg,
		LastDay:   body.Data.LastDay,
		LastWeek:  body.Data.LastWeek,
		LastMonth: body.Data.LastMonth,
	}, nil
}
