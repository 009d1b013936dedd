package report

import (
	"fmt"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
)

// dataSources describes the nature of the inputs behind every report. The
// list is fixed regardless of whether the observation came from a live
// forecast or the synthetic fallback.
var dataSources = []string{
	"Live satellite cloud and precipitation observations",
	"Daily numerical forecast model output",
	"Long-term regional climate patterns",
	"Surface weather station network readings",
}

// Narrative is the rendered summary plus the cited data sources.
type Narrative struct {
	Text    string
	Sources []string
}

// Describe renders the human readable report. It is fully deterministic:
// calling it twice with identical inputs yields byte-identical output.
func Describe(obs Observation, act activity.Type, risks RiskProfile, date string) Narrative {
	dominant, pct := risks.Max()

	var assessment string
	switch {
	case pct < 30:
		assessment = fmt.Sprintf(
			"Conditions look favorable for your %s. The leading concern is %s at just %d%%, well within a comfortable range.",
			act.Label(), dominant.Label(), pct)
	case pct < 60:
		assessment = fmt.Sprintf(
			"Plan your %s with some caution. %s stands out at %d%%, so keep an eye on conditions and pack accordingly.",
			act.Label(), dominant.Label(), pct)
	default:
		assessment = fmt.Sprintf(
			"High risk for your %s: %s reaches %d%%. Consider rescheduling or preparing for difficult conditions.",
			act.Label(), dominant.Label(), pct)
	}

	text := fmt.Sprintf(
		"%s Weather outlook for %s on %s: around %.0f°C, wind up to %.0f km/h, %.1f mm of precipitation, %.0f%% humidity and %.0f%% cloud cover.",
		assessment, obs.LocationLabel, date,
		obs.TemperatureC, obs.WindSpeedKmh, obs.PrecipitationMm, obs.HumidityPct, obs.CloudCoverPct)

	sources := make([]string, len(dataSources))
	copy(sources, dataSources)

	return Narrative{Text: text, Sources: sources}
}
