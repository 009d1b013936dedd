package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/observability"
)

func TestGenerateUsesLiveSources(t *testing.T) {
	geocoder := &stubGeocoder{place: Place{Lat: 48.8566, Lon: 2.3522, Label: "Paris, France"}}
	weather := &stubWeather{daily: DailyForecast{
		TempMaxC: 28, TempMinC: 18, PrecipitationMm: 1.2, HumidityPct: 60, WindMaxKmh: 16, CloudCoverPct: 35,
	}}

	svc := newServiceUnderTest(t, geocoder, weather)
	rep, err := svc.Generate(context.Background(), activity.Picnic, "Paris", "2025-07-04")
	require.NoError(t, err)

	require.Equal(t, "Paris", geocoder.lastName)
	require.Equal(t, "2025-07-04", weather.lastDate)
	require.Equal(t, 23.0, rep.Observation.TemperatureC) // mean of max/min
	require.Equal(t, "Paris, France", rep.Observation.LocationLabel)
	require.Contains(t, rep.Text, "Paris, France")
	require.Len(t, rep.Sources, 4)
	for _, c := range Categories {
		require.GreaterOrEqual(t, rep.Risks[c], 5)
		require.LessOrEqual(t, rep.Risks[c], 95)
	}
}

func TestGenerateFallsBackToStaticTokyo(t *testing.T) {
	// Live geocoding disabled, live forecast failing: the pipeline still
	// produces a usable report from the static table + synthetic data.
	weather := &stubWeather{err: errors.New("upstream down")}

	svc := newServiceUnderTest(t, nil, weather)
	rep, err := svc.Generate(context.Background(), activity.Hiking, "somewhere in TOKYO", "2025-03-10")
	require.NoError(t, err)

	require.Equal(t, 35.6762, rep.Observation.Lat)
	require.Equal(t, 139.6503, rep.Observation.Lon)
	require.Contains(t, rep.Observation.LocationLabel, "Tokyo, Japan")
	require.Contains(t, rep.Observation.LocationLabel, "(estimated)")
}

func TestGenerateSyntheticObservationIsSane(t *testing.T) {
	svc := newServiceUnderTest(t, nil, nil)
	rep, err := svc.Generate(context.Background(), activity.Camping, "atlantis", "not-a-date")
	require.NoError(t, err)

	obs := rep.Observation
	require.Equal(t, defaultPlace.Lat, obs.Lat)
	require.GreaterOrEqual(t, obs.PrecipitationMm, 0.0)
	require.GreaterOrEqual(t, obs.HumidityPct, 0.0)
	require.LessOrEqual(t, obs.HumidityPct, 100.0)
	require.GreaterOrEqual(t, obs.CloudCoverPct, 0.0)
	require.LessOrEqual(t, obs.CloudCoverPct, 100.0)
}

func TestGenerateSyntheticIsRepeatable(t *testing.T) {
	svc := newServiceUnderTest(t, nil, nil)
	first, err := svc.Generate(context.Background(), activity.Fishing, "london", "2025-11-02")
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), activity.Fishing, "london", "2025-11-02")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGenerateGeocoderErrorFallsThrough(t *testing.T) {
	geocoder := &stubGeocoder{err: errors.New("boom")}
	svc := newServiceUnderTest(t, geocoder, nil)
	rep, err := svc.Generate(context.Background(), activity.Vacation, "Sydney harbour", "2025-01-20")
	require.NoError(t, err)
	require.Equal(t, -33.8688, rep.Observation.Lat)
}

func TestSeasonalBaseTemp(t *testing.T) {
	require.Equal(t, 26.0, seasonalBaseTemp(48.8, time.July))    // northern summer
	require.Equal(t, 3.0, seasonalBaseTemp(48.8, time.January))  // northern winter
	require.Equal(t, 3.0, seasonalBaseTemp(48.8, time.December)) // December rolls into winter
	require.Equal(t, 26.0, seasonalBaseTemp(-33.8, time.January))
	require.Equal(t, 3.0, seasonalBaseTemp(-33.8, time.July))
}

func newServiceUnderTest(t *testing.T, geocoder Geocoder, weather WeatherClient) Service {
	t.Helper()
	return NewService(
		Config{CallTimeout: time.Second},
		geocoder,
		weather,
		observability.NewMetricsForTesting(),
		clockwork.NewFakeClock(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

type stubGeocoder struct {
	place    Place
	err      error
	lastName string
}

func (s *stubGeocoder) Search(_ context.Context, name string) (Place, error) {
	if s.err != nil {
		return Place{}, s.err
	}
	s.lastName = name
	return s.place, nil
}

type stubWeather struct {
	daily    DailyForecast
	err      error
	lastDate string
}

func (s *stubWeather) DailyForecast(_ context.Context, lat, lon float64, date string) (DailyForecast, error) {
	if s.err != nil {
		return DailyForecast{}, s.err
	}
	s.lastDate = date
	return s.daily, nil
}
