package report

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"
)

// fetchObservation never fails: live forecast first, then the synthetic
// seasonal generator. Synthetic observations are marked by an
// "(estimated)" suffix on the location label.
func (s *service) fetchObservation(ctx context.Context, place Place, date string) Observation {
	if s.weather != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		started := s.clock.Now()
		daily, err := s.weather.DailyForecast(callCtx, place.Lat, place.Lon, date)
		cancel()
		s.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(s.clock.Since(started).Seconds())
		if err == nil {
			s.metrics.ForecastLookups.WithLabelValues("live").Inc()
			return Observation{
				TemperatureC:    (daily.TempMaxC + daily.TempMinC) / 2,
				PrecipitationMm: daily.PrecipitationMm,
				HumidityPct:     daily.HumidityPct,
				WindSpeedKmh:    daily.WindMaxKmh,
				CloudCoverPct:   daily.CloudCoverPct,
				Lat:             place.Lat,
				Lon:             place.Lon,
				LocationLabel:   place.Label,
			}
		}
		s.logger.Warn("live forecast failed, using synthetic estimate",
			"location", place.Label, "date", date, "error", err)
	}

	s.metrics.ForecastLookups.WithLabelValues("synthetic").Inc()
	return s.syntheticObservation(place, date)
}

// syntheticObservation produces a plausible estimate from a seasonal
// baseline plus bounded jitter. The jitter is seeded from the request, so
// repeating the same (place, date) query yields the same estimate.
func (s *service) syntheticObservation(place Place, date string) Observation {
	rng := seededRand(place.Lat, place.Lon, date)

	base := seasonalBaseTemp(place.Lat, s.resolveMonth(date))
	temp := base + (rng.Float64()*8 - 4)
	precip := math.Max(0, rng.Float64()*10-3)
	humidity := clampRange(40+rng.Float64()*50, 0, 100)
	wind := 5 + rng.Float64()*25
	cloud := clampRange(rng.Float64()*100, 0, 100)

	return Observation{
		TemperatureC:    temp,
		PrecipitationMm: precip,
		HumidityPct:     humidity,
		WindSpeedKmh:    wind,
		CloudCoverPct:   cloud,
		Lat:             place.Lat,
		Lon:             place.Lon,
		LocationLabel:   place.Label + " (estimated)",
	}
}

func (s *service) resolveMonth(date string) time.Month {
	if ts, err := time.Parse("2006-01-02", date); err == nil {
		return ts.Month()
	}
	return s.clock.Now().UTC().Month()
}

// seasonalBaseTemp maps hemisphere and month to one of four climate
// bands. Southern hemisphere seasons are offset by half a year.
func seasonalBaseTemp(lat float64, month time.Month) float64 {
	bands := [4]float64{3, 14, 26, 16} // winter, spring, summer, autumn
	band := (int(month) % 12) / 3      // December rolls over into the winter band
	if lat < 0 {
		band = (band + 2) % 4
	}
	return bands[band]
}

func seededRand(lat, lon float64, date string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(date))
	h.Write([]byte{byte(int(lat*100) & 0xff), byte(int(lon*100) & 0xff)})
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clampRange(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
