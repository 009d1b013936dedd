package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
)

func TestDescribeSeverityBands(t *testing.T) {
	obs := Observation{TemperatureC: 22, WindSpeedKmh: 9, PrecipitationMm: 0.4, HumidityPct: 55, CloudCoverPct: 30, LocationLabel: "Paris, France"}

	favorable := Describe(obs, activity.Picnic, RiskProfile{Hot: 10, Cold: 5, Windy: 12, Wet: 25, Uncomfortable: 8}, "2025-07-04")
	require.Contains(t, favorable.Text, "favorable")
	require.Contains(t, favorable.Text, "Rain & Humidity")
	require.Contains(t, favorable.Text, "25%")

	caution := Describe(obs, activity.Picnic, RiskProfile{Hot: 10, Cold: 5, Windy: 45, Wet: 30, Uncomfortable: 8}, "2025-07-04")
	require.Contains(t, caution.Text, "caution")
	require.Contains(t, caution.Text, "Strong Wind")

	severe := Describe(obs, activity.Picnic, RiskProfile{Hot: 80, Cold: 5, Windy: 12, Wet: 25, Uncomfortable: 8}, "2025-07-04")
	require.Contains(t, severe.Text, "High risk")
	require.Contains(t, severe.Text, "rescheduling")
}

func TestDescribeIncludesForecastFigures(t *testing.T) {
	obs := Observation{TemperatureC: 21.6, WindSpeedKmh: 14.4, PrecipitationMm: 2.34, HumidityPct: 61, CloudCoverPct: 48, LocationLabel: "Tokyo, Japan"}
	n := Describe(obs, activity.Hiking, Score(obs, activity.Hiking), "2025-09-01")

	require.Contains(t, n.Text, "Tokyo, Japan")
	require.Contains(t, n.Text, "2025-09-01")
	require.Contains(t, n.Text, "22°C")    // rounded to whole degrees
	require.Contains(t, n.Text, "14 km/h") // rounded
	require.Contains(t, n.Text, "2.3 mm")  // one decimal
	require.Len(t, n.Sources, 4)
}

func TestDescribeIsIdempotent(t *testing.T) {
	obs := Observation{TemperatureC: 28, WindSpeedKmh: 20, PrecipitationMm: 6, HumidityPct: 80, CloudCoverPct: 70, LocationLabel: "Mumbai, India"}
	risks := Score(obs, activity.Sports)
	first := Describe(obs, activity.Sports, risks, "2025-06-15")
	second := Describe(obs, activity.Sports, risks, "2025-06-15")
	require.Equal(t, first, second)
}
