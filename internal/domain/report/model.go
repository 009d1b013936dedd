package report

// Place is a resolved geographic location.
type Place struct {
	Lat   float64
	Lon   float64
	Label string
}

// Observation is the normalized daily weather snapshot a report is built
// from. It is produced once per report request and never mutated.
type Observation struct {
	TemperatureC    float64
	PrecipitationMm float64
	HumidityPct     float64
	WindSpeedKmh    float64
	CloudCoverPct   float64
	Lat             float64
	Lon             float64
	LocationLabel   string
}

// DailyForecast carries the raw daily aggregates returned by a live
// forecast source before normalization.
type DailyForecast struct {
	TempMaxC        float64
	TempMinC        float64
	PrecipitationMm float64
	HumidityPct     float64
	WindMaxKmh      float64
	CloudCoverPct   float64
}

// Category identifies one of the five weather hazard dimensions.
type Category string

const (
	Hot           Category = "hot"
	Cold          Category = "cold"
	Windy         Category = "windy"
	Wet           Category = "wet"
	Uncomfortable Category = "uncomfortable"
)

// Categories fixes the enumeration order used for tie-breaking when two
// categories share the maximum score.
var Categories = []Category{Hot, Cold, Windy, Wet, Uncomfortable}

var categoryLabels = map[Category]string{
	Hot:           "Extreme Heat",
	Cold:          "Cold Snap",
	Windy:         "Strong Wind",
	Wet:           "Rain & Humidity",
	Uncomfortable: "General Discomfort",
}

// Label returns the human readable name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// RiskProfile maps each category to a percentage in [5, 95]. Scores are
// clamped independently and do not sum to 100.
type RiskProfile map[Category]int

// Max returns the highest risk and its category. The first category in
// Categories order wins ties.
func (p RiskProfile) Max() (Category, int) {
	best := Categories[0]
	bestVal := p[best]
	for _, c := range Categories[1:] {
		if p[c] > bestVal {
			best = c
			bestVal = p[c]
		}
	}
	return best, bestVal
}

// Report is the final product of the pipeline.
type Report struct {
	Text        string
	Sources     []string
	Risks       RiskProfile
	Observation Observation
	Date        string
}
