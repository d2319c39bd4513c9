package contrib

// Intensity bands, inclusive upper bounds. Anything above the last bound is
// the top band.
var levelBounds = [...]int{0, 2, 4, 6}

const MaxLevel = len(levelBounds)

var levelLabels = [MaxLevel + 1]string{
	"No activity",
	"Low activity",
	"Medium activity",
	"High activity",
	"Very high activity",
}

// Level maps a count to 0..MaxLevel. It never decreases as count grows.
func Level(count int) int {
	for i, bound := range levelBounds {
		if count <= bound {
			return i
		}
	}
	return MaxLevel
}

func LevelLabel(level int) string {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelLabels[level]
}

type Band struct {
	Level int    `json:"level"`
	Label string `json:"label"`
	Min   int    `json:"min"`
	// Max is -1 for the open-ended top band.
	Max int `json:"max"`
}

func Legend() []Band {
	bands := make([]Band, 0, MaxLevel+1)
	low := 0
	for i, bound := range levelBounds {
		bands = append(bands, Band{Level: i, Label: levelLabels[i], Min: low, Max: bound})
		low = bound + 1
	}
	return append(bands, Band{Level: MaxLevel, Label: levelLabels[MaxLevel], Min: low, Max: -1})
}
