// Package staticapi defines the read-only JSON documents the site serves
// under /api and can write them to disk for static hosting.
package staticapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/contrib"
)

type Endpoint struct {
	Name  string
	Value func() any
}

// Endpoints lists every static document, in a stable order.
func Endpoints(ds *content.Dataset) []Endpoint {
	return []Endpoint{
		{"profile", func() any { return ds.Profile() }},
		{"stats", func() any { return ds.Stats() }},
		{"projects", func() any { return ds.Projects() }},
		{"skills", func() any { return ds.Skills() }},
		{"videos", func() any { return ds.Videos() }},
		{"posts", func() any { return ds.Posts() }},
		{"articles", func() any { return ds.Articles() }},
		{"github-activity", func() any { return ds.GitHubActivity() }},
		{"contributions", func() any { return contrib.BuildGraph(ds.GitHubActivity()) }},
	}
}

// Write renders each endpoint to dir/<name>.json and returns the paths written.
func Write(dir string, ds *content.Dataset) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}

	var written []string
	for _, ep := range Endpoints(ds) {
		data, err := json.MarshalIndent(ep.Value(), "", "  ")
		if err != nil {
			return written, fmt.Errorf("encode %s: %w", ep.Name, err)
		}
		path := filepath.Join(dir, ep.Name+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
