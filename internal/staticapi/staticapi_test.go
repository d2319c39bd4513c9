package staticapi

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/contrib"
)

func TestWrite(t *testing.T) {
	ds, err := content.Load(content.Options{
		Now:  time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC),
		Rand: rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "public", "api")
	paths, err := Write(dir, ds)
	require.NoError(t, err)
	assert.Len(t, paths, len(Endpoints(ds)))

	for _, name := range []string{"stats", "projects", "skills", "videos", "posts", "articles", "github-activity"} {
		assert.FileExists(t, filepath.Join(dir, name+".json"))
	}

	raw, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	require.NoError(t, err)
	var projects []content.Project
	require.NoError(t, json.Unmarshal(raw, &projects))
	assert.Equal(t, ds.Projects(), projects)

	raw, err = os.ReadFile(filepath.Join(dir, "github-activity.json"))
	require.NoError(t, err)
	var activity content.GitHubActivity
	require.NoError(t, json.Unmarshal(raw, &activity))
	assert.Equal(t, ds.GitHubActivity().ContributionGraph, activity.ContributionGraph)

	raw, err = os.ReadFile(filepath.Join(dir, "contributions.json"))
	require.NoError(t, err)
	var graph contrib.Graph
	require.NoError(t, json.Unmarshal(raw, &graph))
	assert.Equal(t, contrib.Total(activity.ContributionGraph), graph.Total)
}

func TestWriteUnwritableDir(t *testing.T) {
	ds, err := content.Load(content.Options{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err = Write(filepath.Join(file, "sub"), ds)
	assert.Error(t, err)
}
