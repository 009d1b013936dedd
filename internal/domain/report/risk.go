package report

import (
	"math"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
)

const (
	riskFloor   = 5
	riskCeiling = 95
)

// Score derives the five risk percentages from one observation and the
// planned activity. Scoring itself has no randomness: identical inputs
// always produce an identical profile.
func Score(obs Observation, act activity.Type) RiskProfile {
	adj := act.Adjustment()

	base := map[Category]float64{
		Hot:           (obs.TemperatureC - 25) * 3,
		Cold:          (5 - obs.TemperatureC) * 4,
		Windy:         obs.WindSpeedKmh * 2,
		Wet:           obs.PrecipitationMm*10 + obs.HumidityPct*0.3,
		Uncomfortable: math.Abs(obs.TemperatureC-20)*2 + obs.HumidityPct*0.2,
	}
	extra := map[Category]float64{
		Hot:           adj.Hot,
		Cold:          adj.Cold,
		Windy:         adj.Windy,
		Wet:           adj.Wet,
		Uncomfortable: adj.Uncomfortable,
	}

	profile := make(RiskProfile, len(Categories))
	for _, c := range Categories {
		profile[c] = clampRisk(clampRiskF(base[c]) + extra[c])
	}
	return profile
}

func clampRiskF(v float64) float64 {
	return math.Min(riskCeiling, math.Max(riskFloor, v))
}

func clampRisk(v float64) int {
	return int(math.Round(clampRiskF(v)))
}
