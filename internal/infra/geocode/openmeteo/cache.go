package openmeteo

import (
	"context"
	"strings"
	"sync"

	"github.com/yanqian/outdoor-planner/internal/domain/report"
)

// CachedGeocoder memoizes successful lookups. Place names repeat heavily
// across conversations and coordinates never change, so a small bounded
// cache avoids most upstream calls. Failures are not cached.
type CachedGeocoder struct {
	inner report.Geocoder

	mu      sync.Mutex
	max     int
	entries map[string]report.Place
	order   []string // insertion order, oldest first
}

// NewCachedGeocoder wraps a geocoder with a bounded in-memory cache.
func NewCachedGeocoder(inner report.Geocoder, maxEntries int) *CachedGeocoder {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &CachedGeocoder{
		inner:   inner,
		max:     maxEntries,
		entries: make(map[string]report.Place),
	}
}

func (c *CachedGeocoder) Search(ctx context.Context, name string) (report.Place, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	c.mu.Lock()
	place, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return place, nil
	}

	place, err := c.inner.Search(ctx, name)
	if err != nil {
		return report.Place{}, err
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		c.entries[key] = place
		c.order = append(c.order, key)
		if len(c.order) > c.max {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
	}
	c.mu.Unlock()
	return place, nil
}

var _ report.Geocoder = (*CachedGeocoder)(nil)
