package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dialogue and report
// pipeline.
type Metrics struct {
	TurnsProcessed  *prometheus.CounterVec // labels: stage, outcome={advanced,reprompt,report,error}
	ReportsTotal    *prometheus.CounterVec // labels: outcome={ok,failed}
	GeocodeLookups  *prometheus.CounterVec // labels: outcome={live,static,default}
	ForecastLookups *prometheus.CounterVec // labels: outcome={live,synthetic}

	UpstreamDuration *prometheus.HistogramVec // labels: service={geocode,forecast}
	ReportDuration   prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		TurnsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outdoor_planner",
			Name:      "turns_processed_total",
			Help:      "Conversation turns by stage and outcome.",
		}, []string{"stage", "outcome"}),
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outdoor_planner",
			Name:      "reports_total",
			Help:      "Weather risk reports by outcome.",
		}, []string{"outcome"}),
		GeocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outdoor_planner",
			Name:      "geocode_lookups_total",
			Help:      "Location resolutions by fallback level.",
		}, []string{"outcome"}),
		ForecastLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outdoor_planner",
			Name:      "forecast_lookups_total",
			Help:      "Forecast fetches by data origin.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "outdoor_planner",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of external geocode/forecast calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outdoor_planner",
			Name:      "report_duration_seconds",
			Help:      "End-to-end report pipeline duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
	}
}

// NewMetrics creates and registers all instruments with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TurnsProcessed,
		m.ReportsTotal,
		m.GeocodeLookups,
		m.ForecastLookups,
		m.UpstreamDuration,
		m.ReportDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered instruments so parallel tests
// do not trip the "already registered" panic.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
