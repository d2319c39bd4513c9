package contrib

import (
	"math"

	"github.com/Zachkp/folio/internal/content"
)

type Cell struct {
	Date        string `json:"date,omitempty"`
	Count       int    `json:"count"`
	Level       int    `json:"level"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type Share struct {
	Label   string `json:"label"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// Graph is the render-ready contribution heat-map.
type Graph struct {
	Weeks  [][]Cell `json:"weeks"`
	Total  int      `json:"total"`
	Legend []Band   `json:"legend"`
	Shares []Share  `json:"shares"`
}

func BuildGraph(activity content.GitHubActivity) Graph {
	weeks := GroupByWeek(activity.ContributionGraph)
	grid := make([][]Cell, 0, len(weeks))
	for _, week := range weeks {
		column := make([]Cell, 0, len(week))
		for _, day := range week {
			if IsPlaceholder(day) {
				column = append(column, Cell{Count: -1, Placeholder: true})
				continue
			}
			column = append(column, Cell{Date: day.Date, Count: day.Count, Level: Level(day.Count)})
		}
		grid = append(grid, column)
	}

	return Graph{
		Weeks:  grid,
		Total:  Total(activity.ContributionGraph),
		Legend: Legend(),
		Shares: shares(activity),
	}
}

func shares(a content.GitHubActivity) []Share {
	out := []Share{
		{Label: "Commits", Value: a.TotalCommits},
		{Label: "Pull Requests", Value: a.TotalPRs},
		{Label: "Issues", Value: a.TotalIssues},
	}
	sum := a.TotalCommits + a.TotalPRs + a.TotalIssues
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i].Percent = int(math.Round(float64(out[i].Value) * 100 / float64(sum)))
	}
	return out
}
