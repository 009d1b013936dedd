package report

import (
	"context"
	"strings"
)

type staticPlace struct {
	key   string
	place Place
}

// staticPlaces backs the second resolver stage: a case-insensitive
// substring match over major city names, tried in declared order.
var staticPlaces = []staticPlace{
	{"new york", Place{Lat: 40.7128, Lon: -74.0060, Label: "New York, United States"}},
	{"london", Place{Lat: 51.5074, Lon: -0.1278, Label: "London, United Kingdom"}},
	{"tokyo", Place{Lat: 35.6762, Lon: 139.6503, Label: "Tokyo, Japan"}},
	{"paris", Place{Lat: 48.8566, Lon: 2.3522, Label: "Paris, France"}},
	{"sydney", Place{Lat: -33.8688, Lon: 151.2093, Label: "Sydney, Australia"}},
	{"mumbai", Place{Lat: 19.0760, Lon: 72.8777, Label: "Mumbai, India"}},
	{"singapore", Place{Lat: 1.3521, Lon: 103.8198, Label: "Singapore"}},
	{"berlin", Place{Lat: 52.5200, Lon: 13.4050, Label: "Berlin, Germany"}},
	{"toronto", Place{Lat: 43.6532, Lon: -79.3832, Label: "Toronto, Canada"}},
	{"cape town", Place{Lat: -33.9249, Lon: 18.4241, Label: "Cape Town, South Africa"}},
}

// defaultPlace is the last resort when nothing matches.
var defaultPlace = Place{Lat: 40.7128, Lon: -74.0060, Label: "New York, United States"}

// resolveLocation never fails: live geocoding, then the static city
// table, then a fixed default.
func (s *service) resolveLocation(ctx context.Context, name string) Place {
	if s.geocoder != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		started := s.clock.Now()
		place, err := s.geocoder.Search(callCtx, name)
		cancel()
		s.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(s.clock.Since(started).Seconds())
		if err == nil {
			s.metrics.GeocodeLookups.WithLabelValues("live").Inc()
			return place
		}
		s.logger.Warn("live geocoding failed, using static table", "location", name, "error", err)
	}

	lowered := strings.ToLower(name)
	for _, sp := range staticPlaces {
		if strings.Contains(lowered, sp.key) {
			s.metrics.GeocodeLookups.WithLabelValues("static").Inc()
			return sp.place
		}
	}

	s.metrics.GeocodeLookups.WithLabelValues("default").Inc()
	s.logger.Info("location not recognized, using default", "location", name, "default", defaultPlace.Label)
	return defaultPlace
}
