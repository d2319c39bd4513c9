// Package contrib turns a daily activity series into the week columns of a
// calendar heat-map.
package contrib

import (
	"time"

	"github.com/Zachkp/folio/internal/content"
)

// Week is one grid column. Index r holds the day whose weekday is r, with
// Sunday at 0, provided the input was contiguous.
type Week []content.ContributionDay

// Placeholder pads the first week so real days land on their weekday row.
var Placeholder = content.ContributionDay{Date: "", Count: -1}

func IsPlaceholder(d content.ContributionDay) bool {
	return d.Count < 0
}

// Weekday parses a YYYY-MM-DD date and returns 0 (Sunday) to 6 (Saturday).
func Weekday(date string) (int, bool) {
	t, err := time.Parse(content.DateLayout, date)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// GroupByWeek buckets contiguous, oldest-first days into weeks. The first
// week is left-padded with placeholders; a week closes after a Saturday or
// after the last day. The last week is not right-padded. An unparseable
// date takes the weekday after its predecessor (Sunday for the first day).
func GroupByWeek(days []content.ContributionDay) []Week {
	weeks := []Week{}
	var current Week
	prev := -1

	for i, day := range days {
		dow, ok := Weekday(day.Date)
		if !ok {
			dow = (prev + 1) % 7
		}
		prev = dow

		if i == 0 {
			for j := 0; j < dow; j++ {
				current = append(current, Placeholder)
			}
		}

		current = append(current, day)

		if dow == int(time.Saturday) || i == len(days)-1 {
			weeks = append(weeks, current)
			current = nil
		}
	}
	return weeks
}

// Total sums real counts and skips placeholders.
func Total(days []content.ContributionDay) int {
	sum := 0
	for _, d := range days {
		if IsPlaceholder(d) {
			continue
		}
		sum += d.Count
	}
	return sum
}
