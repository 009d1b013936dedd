package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outdoor-planner/internal/domain/report"
)

func TestSearchReturnsFirstResult(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("name")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"name":"Tokyo","latitude":35.6762,"longitude":139.6503,"country":"Japan"},
			{"name":"Tokyo","latitude":0,"longitude":0,"country":"Other"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	place, err := client.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Equal(t, "Tokyo", gotQuery)
	require.Equal(t, report.Place{Lat: 35.6762, Lon: 139.6503, Label: "Tokyo, Japan"}, place)
}

func TestSearchEmptyResultsIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Search(context.Background(), "nowhereville")
	require.Error(t, err)
}

func TestSearchNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Search(context.Background(), "Paris")
	require.Error(t, err)
}

func TestSearchMalformedJSONIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Search(context.Background(), "Paris")
	require.Error(t, err)
}

func TestCachedGeocoderHitsUpstreamOnce(t *testing.T) {
	inner := &countingGeocoder{place: report.Place{Lat: 1, Lon: 2, Label: "Somewhere"}}
	cached := NewCachedGeocoder(inner, 10)

	for i := 0; i < 3; i++ {
		place, err := cached.Search(context.Background(), "  Somewhere ")
		require.NoError(t, err)
		require.Equal(t, inner.place, place)
	}
	require.Equal(t, 1, inner.calls)

	// Case and whitespace variants share the cache entry.
	_, err := cached.Search(context.Background(), "sOmEwHeRe")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)
}

func TestCachedGeocoderDoesNotCacheFailures(t *testing.T) {
	inner := &countingGeocoder{failFirst: 1, place: report.Place{Label: "Late"}}
	cached := NewCachedGeocoder(inner, 10)

	_, err := cached.Search(context.Background(), "flaky")
	require.Error(t, err)

	place, err := cached.Search(context.Background(), "flaky")
	require.NoError(t, err)
	require.Equal(t, "Late", place.Label)
}

func TestCachedGeocoderEvictsOldest(t *testing.T) {
	inner := &countingGeocoder{place: report.Place{Label: "X"}}
	cached := NewCachedGeocoder(inner, 2)

	for _, name := range []string{"a", "b", "c"} {
		_, err := cached.Search(context.Background(), name)
		require.NoError(t, err)
	}
	require.Equal(t, 3, inner.calls)

	// "a" was evicted, "c" was not.
	_, err := cached.Search(context.Background(), "c")
	require.NoError(t, err)
	require.Equal(t, 3, inner.calls)

	_, err = cached.Search(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, 4, inner.calls)
}

type countingGeocoder struct {
	place     report.Place
	failFirst int
	calls     int
}

func (c *countingGeocoder) Search(_ context.Context, _ string) (report.Place, error) {
	c.calls++
	if c.calls <= c.failFirst {
		return report.Place{}, context.DeadlineExceeded
	}
	return c.place, nil
}
