// Package trending keeps a periodically refreshed list of trending tech subjects and seasonal events.
package trending

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Source produces a fresh list of trending subjects
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Cache holds trending subjects refreshed from a source once per interval
type Cache struct {
	source   Source
	interval time.Duration

	mu              sync.RWMutex
	topics          []string
	lastRefreshedAt time.Time
}

// NewCache makes an empty cache, the first RefreshIfStale call fills it
func NewCache(source Source, interval time.Duration) *Cache {
	return &Cache{source: source, interval: interval}
}

// RefreshIfStale refreshes topics when the cache was never refreshed or the interval has passed since
// the last refresh, and reports whether it did. A failed fetch keeps the previous topics.
func (c *Cache) RefreshIfStale(ctx context.Context, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRefreshedAt.IsZero() && now.Sub(c.lastRefreshedAt) < c.interval {
		return false
	}

	topics, err := c.source.Fetch(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to refresh trending topics: %v", err)
		return false
	}
	if len(topics) == 0 {
		lgr.Printf("[WARN] trending source returned no topics, keeping %d", len(c.topics))
		return false
	}

	c.topics = topics
	c.lastRefreshedAt = now
	lgr.Printf("[INFO] trending topics updated: %s", strings.Join(topics, ", "))
	return true
}

// Topics returns a copy of the current topics
func (c *Cache) Topics() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.topics)
}

// Seasonal returns events for the month from a map keyed by lowercase month name
func Seasonal(events map[string][]string, month time.Month) []string {
	return slices.Clone(events[strings.ToLower(month.String())])
}
