package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
	"github.com/yanqian/outdoor-planner/internal/domain/report"
	"github.com/yanqian/outdoor-planner/internal/infra/config"
	"github.com/yanqian/outdoor-planner/internal/infra/convstore"
	forecastapi "github.com/yanqian/outdoor-planner/internal/infra/forecast/openmeteo"
	geocodeapi "github.com/yanqian/outdoor-planner/internal/infra/geocode/openmeteo"
	httpiface "github.com/yanqian/outdoor-planner/internal/interface/http"
)

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideReportConfig(cfg *config.Config) report.Config {
	return report.Config{CallTimeout: cfg.Report.CallTimeout}
}

func provideConversationConfig(cfg *config.Config) conversation.Config {
	return conversation.Config{HistoryLimit: cfg.Conversation.HistoryLimit}
}

// provideGeocoder returns nil when live geocoding is disabled; the report
// service falls back to its static city table.
func provideGeocoder(cfg *config.Config, logger *slog.Logger) report.Geocoder {
	if !cfg.Geocode.Enabled {
		logger.Info("live geocoding disabled, using static city table")
		return nil
	}
	client := geocodeapi.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.Timeout)
	if cfg.Geocode.CacheSize > 0 {
		return geocodeapi.NewCachedGeocoder(client, cfg.Geocode.CacheSize)
	}
	return client
}

// provideWeatherClient returns nil when live forecasts are disabled; the
// report service synthesizes seasonal estimates instead.
func provideWeatherClient(cfg *config.Config, logger *slog.Logger) report.WeatherClient {
	if !cfg.Forecast.Enabled {
		logger.Info("live forecasts disabled, using seasonal estimates")
		return nil
	}
	return forecastapi.NewClient(cfg.Forecast.BaseURL, cfg.Forecast.Timeout)
}

func provideConversationStore(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) conversation.Store {
	if cfg.Conversation.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return convstore.NewMemoryStore(cfg.Conversation.SessionTTL, clock)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return convstore.NewMemoryStore(cfg.Conversation.SessionTTL, clock)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey session store enabled", "addr", cfg.Conversation.Valkey.Addr)
			return convstore.NewValkeyStore(client, "conversation", cfg.Conversation.SessionTTL)
		}
	}
	return convstore.NewMemoryStore(cfg.Conversation.SessionTTL, clock)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Conversation.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Conversation.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Conversation.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideWSHandler(cfg *config.Config, convSvc conversation.Service, logger *slog.Logger) *httpiface.WSHandler {
	return httpiface.NewWSHandler(convSvc, cfg.HTTP.AllowedOrigins, logger)
}
