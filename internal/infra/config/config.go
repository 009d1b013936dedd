package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Geocode      GeocodeConfig      `yaml:"geocode"`
	Forecast     ForecastConfig     `yaml:"forecast"`
	Report       ReportConfig       `yaml:"report"`
	Conversation ConversationConfig `yaml:"conversation"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// GeocodeConfig controls the live location resolver.
type GeocodeConfig struct {
	Enabled   bool          `yaml:"enabled"`
	BaseURL   string        `yaml:"baseUrl"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheSize int           `yaml:"cacheSize"`
}

// ForecastConfig controls the live forecast source.
type ForecastConfig struct {
	Enabled bool          `yaml:"enabled"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// ReportConfig tunes the report pipeline.
type ReportConfig struct {
	CallTimeout time.Duration `yaml:"callTimeout"`
}

// ConversationConfig controls dialogue sessions and their storage.
type ConversationConfig struct {
	HistoryLimit int           `yaml:"historyLimit"`
	SessionTTL   time.Duration `yaml:"sessionTtl"`
	Valkey       ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the session store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("GEOCODE_ENABLED"); v != "" {
		cfg.Geocode.Enabled = isTruthy(v)
	}
	if v := os.Getenv("GEOCODE_BASE_URL"); v != "" {
		cfg.Geocode.BaseURL = v
	}
	if v := os.Getenv("GEOCODE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geocode.Timeout = parsed
		}
	}
	if v := os.Getenv("GEOCODE_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Geocode.CacheSize = parsed
		}
	}
	if v := os.Getenv("FORECAST_ENABLED"); v != "" {
		cfg.Forecast.Enabled = isTruthy(v)
	}
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.Forecast.BaseURL = v
	}
	if v := os.Getenv("FORECAST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.Timeout = parsed
		}
	}
	if v := os.Getenv("REPORT_CALL_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Report.CallTimeout = parsed
		}
	}
	if v := os.Getenv("CONVERSATION_HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Conversation.HistoryLimit = parsed
		}
	}
	if v := os.Getenv("CONVERSATION_SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Conversation.SessionTTL = parsed
		}
	}
	if v := os.Getenv("CONVERSATION_VALKEY_ENABLED"); v != "" {
		cfg.Conversation.Valkey.Enabled = isTruthy(v)
	}
	if v := os.Getenv("CONVERSATION_VALKEY_ADDR"); v != "" {
		cfg.Conversation.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/ws/chat",
				},
			},
		},
		Geocode: GeocodeConfig{
			Enabled:   true,
			BaseURL:   "https://geocoding-api.open-meteo.com/v1/search",
			Timeout:   10 * time.Second,
			CacheSize: 256,
		},
		Forecast: ForecastConfig{
			Enabled: true,
			BaseURL: "https://api.open-meteo.com/v1/forecast",
			Timeout: 10 * time.Second,
		},
		Report: ReportConfig{
			CallTimeout: 10 * time.Second,
		},
		Conversation: ConversationConfig{
			HistoryLimit: 200,
			SessionTTL:   12 * time.Hour,
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Geocode.Enabled && c.Geocode.BaseURL == "" {
		return errors.New("geocode.baseUrl cannot be empty when geocoding is enabled")
	}
	if c.Forecast.Enabled && c.Forecast.BaseURL == "" {
		return errors.New("forecast.baseUrl cannot be empty when live forecasts are enabled")
	}
	if c.Report.CallTimeout <= 0 {
		return errors.New("report.callTimeout must be positive")
	}
	if c.Conversation.HistoryLimit < 0 {
		return errors.New("conversation.historyLimit cannot be negative")
	}
	if c.Conversation.SessionTTL < 0 {
		return errors.New("conversation.sessionTtl cannot be negative")
	}
	if c.Conversation.Valkey.Enabled && strings.TrimSpace(c.Conversation.Valkey.Addr) == "" {
		return errors.New("conversation.valkey.addr cannot be empty when the valkey store is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
