package contrib

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/content"
)

func TestLevelBands(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3}, {7, 4}, {100, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.count), "count %d", tt.count)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for c := 1; c <= 50; c++ {
		l := Level(c)
		assert.GreaterOrEqual(t, l, prev, "level dropped at %d", c)
		prev = l
	}
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "No activity", LevelLabel(0))
	assert.Equal(t, "Very high activity", LevelLabel(MaxLevel))
	assert.Equal(t, "No activity", LevelLabel(-3))
	assert.Equal(t, "Very high activity", LevelLabel(99))
}

func TestLegendCoversAllCounts(t *testing.T) {
	legend := Legend()
	require.Len(t, legend, MaxLevel+1)
	for _, b := range legend {
		assert.Equal(t, b.Level, Level(b.Min))
		if b.Max >= 0 {
			assert.Equal(t, b.Level, Level(b.Max))
		}
	}
	assert.Equal(t, -1, legend[MaxLevel].Max)
}

func TestBuildGraph(t *testing.T) {
	now := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	activity := content.GitHubActivity{
		TotalCommits:      296,
		TotalPRs:          68,
		TotalIssues:       4,
		ContributionGraph: content.GenerateContributions(now, rand.New(rand.NewSource(5))),
	}

	g := BuildGraph(activity)

	assert.Equal(t, Total(activity.ContributionGraph), g.Total)
	assert.Len(t, g.Weeks, len(GroupByWeek(activity.ContributionGraph)))

	cells := 0
	for _, w := range g.Weeks {
		for _, c := range w {
			if c.Placeholder {
				assert.Equal(t, -1, c.Count)
				assert.Empty(t, c.Date)
				continue
			}
			cells++
			assert.Equal(t, Level(c.Count), c.Level)
		}
	}
	assert.Equal(t, len(activity.ContributionGraph), cells)

	require.Len(t, g.Shares, 3)
	assert.Equal(t, 80, g.Shares[0].Percent)
	assert.Equal(t, 18, g.Shares[1].Percent)
	assert.Equal(t, 1, g.Shares[2].Percent)
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(content.GitHubActivity{})
	assert.Empty(t, g.Weeks)
	assert.NotNil(t, g.Weeks)
	assert.Zero(t, g.Total)
	for _, s := range g.Shares {
		assert.Zero(t, s.Percent)
	}
}
