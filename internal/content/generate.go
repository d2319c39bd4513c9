package content

import (
	"math/rand"
	"time"
)

const DateLayout = "2006-01-02"

// GenerateContributions returns demo activity for every day from one year
// before now up to and including now, oldest first. Weekdays are busier
// than weekends.
func GenerateContributions(now time.Time, rng *rand.Rand) []ContributionDay {
	end := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	start := end.AddDate(-1, 0, 0)

	var days []ContributionDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday

		count := 0
		roll := rng.Float64()
		if !weekend {
			if roll < 0.7 {
				count = rng.Intn(8) + 1
			}
		} else if roll < 0.3 {
			count = rng.Intn(4) + 1
		}

		days = append(days, ContributionDay{Date: d.Format(DateLayout), Count: count})
	}
	return days
}
