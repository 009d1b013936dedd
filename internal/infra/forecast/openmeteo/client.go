package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/outdoor-planner/internal/domain/report"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// dailyFields are the aggregates requested for the single target date.
var dailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"wind_speed_10m_max",
	"relative_humidity_2m_mean",
	"cloud_cover_mean",
}

// Client fetches daily forecasts from the Open-Meteo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DailyForecast retrieves the aggregates for one date in the location's
// local time zone. A missing field or empty series is a failure so the
// caller can fall back to a synthetic estimate.
func (c *Client) DailyForecast(ctx context.Context, lat, lon float64, date string) (report.DailyForecast, error) {
	params := url.Values{
		"latitude":   {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', 4, 64)},
		"daily":      {strings.Join(dailyFields, ",")},
		"timezone":   {"auto"},
		"start_date": {date},
		"end_date":   {date},
	}
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return report.DailyForecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return report.DailyForecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return report.DailyForecast{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return report.DailyForecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	return normalizeDaily(raw.Daily)
}

type forecastResponse struct {
	Daily dailyBlock `json:"daily"`
}

type dailyBlock struct {
	Time           []string  `json:"time"`
	TempMax        []float64 `json:"temperature_2m_max"`
	TempMin        []float64 `json:"temperature_2m_min"`
	Precipitation  []float64 `json:"precipitation_sum"`
	WindMax        []float64 `json:"wind_speed_10m_max"`
	HumidityMean   []float64 `json:"relative_humidity_2m_mean"`
	CloudCoverMean []float64 `json:"cloud_cover_mean"`
}

func normalizeDaily(d dailyBlock) (report.DailyForecast, error) {
	series := [][]float64{d.TempMax, d.TempMin, d.Precipitation, d.WindMax, d.HumidityMean, d.CloudCoverMean}
	for i, s := range series {
		if len(s) == 0 {
			return report.DailyForecast{}, fmt.Errorf("forecast response missing %s", dailyFields[i])
		}
	}
	return report.DailyForecast{
		TempMaxC:        d.TempMax[0],
		TempMinC:        d.TempMin[0],
		PrecipitationMm: d.Precipitation[0],
		WindMaxKmh:      d.WindMax[0],
		HumidityPct:     d.HumidityMean[0],
		CloudCoverPct:   d.CloudCoverMean[0],
	}, nil
}

var _ report.WeatherClient = (*Client)(nil)
