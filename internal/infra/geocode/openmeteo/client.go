package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/outdoor-planner/internal/domain/report"
)

const defaultBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// Client resolves place names via the Open-Meteo geocoding API.
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

// Search returns the first match for the free-text place name. Zero
// results count as a failure so callers can fall back.
func (c *Client) Search(ctx context.Context, name string) (report.Place, error) {
	params := url.Values{
		"name":   {name},
		"count":  {"1"},
		"format": {"json"},
	}
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return report.Place{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return report.Place{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return report.Place{}, fmt.Errorf("geocode request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return report.Place{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(raw.Results) == 0 {
		return report.Place{}, fmt.Errorf("no geocode results for %q", name)
	}

	first := raw.Results[0]
	return report.Place{
		Lat:   first.Latitude,
		Lon:   first.Longitude,
		Label: placeLabel(first),
	}, nil
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

func placeLabel(r searchResult) string {
	if r.Country == "" || r.Country == r.Name {
		return r.Name
	}
	return r.Name + ", " + r.Country
}

var _ report.Geocoder = (*Client)(nil)
