package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/observability"
	apperrors "github.com/yanqian/outdoor-planner/pkg/errors"
)

// Service produces weather risk reports for a planned activity.
type Service interface {
	Generate(ctx context.Context, act activity.Type, locationText, dateText string) (Report, error)
}

// Geocoder resolves a free-text place name against a live source. A nil
// Geocoder disables live resolution entirely.
type Geocoder interface {
	Search(ctx context.Context, name string) (Place, error)
}

// WeatherClient fetches live daily aggregates for one date. A nil client
// disables live forecasts.
type WeatherClient interface {
	DailyForecast(ctx context.Context, lat, lon float64, date string) (DailyForecast, error)
}

// Config tunes the report pipeline.
type Config struct {
	// CallTimeout bounds each individual upstream call. Expiry counts as
	// a live-source failure and triggers the fallback chain.
	CallTimeout time.Duration
}

type service struct {
	cfg      Config
	geocoder Geocoder
	weather  WeatherClient
	metrics  *observability.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewService wires up the report pipeline.
func NewService(cfg Config, geocoder Geocoder, weather WeatherClient, metrics *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) Service {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		weather:  weather,
		metrics:  metrics,
		clock:    clock,
		logger:   logger.With("component", "report.service"),
	}
}

// Generate runs resolver → provider → scorer → narrative in sequence.
// The two external calls each carry their own fallback, so the pipeline
// only fails on an internal error.
func (s *service) Generate(ctx context.Context, act activity.Type, locationText, dateText string) (Report, error) {
	if !act.Valid() {
		s.metrics.ReportsTotal.WithLabelValues("failed").Inc()
		return Report{}, apperrors.Wrap("report_failed", "unknown activity type", nil)
	}

	started := s.clock.Now()

	place := s.resolveLocation(ctx, locationText)
	obs := s.fetchObservation(ctx, place, dateText)
	risks := Score(obs, act)
	narrative := Describe(obs, act, risks, dateText)

	s.metrics.ReportDuration.Observe(s.clock.Since(started).Seconds())
	s.metrics.ReportsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("report generated",
		"activity", act, "location", obs.LocationLabel, "date", dateText,
		"dominant", firstKey(risks))

	return Report{
		Text:        narrative.Text,
		Sources:     narrative.Sources,
		Risks:       risks,
		Observation: obs,
		Date:        dateText,
	}, nil
}

func firstKey(risks RiskProfile) string {
	c, _ := risks.Max()
	return string(c)
}
