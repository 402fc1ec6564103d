package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/rosterbot/internal/pager"
)

// DefaultCountTTL is the default lifetime of a cached total count.
const DefaultCountTTL = 30 * time.Second

// countEntry is one cached total with its expiry.
type countEntry struct {
	total     int
	expiresAt time.Time
}

// expired reports whether the entry is past its TTL at now.
func (e countEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// CountCache memoizes per-filter total counts with a TTL. Concurrent misses
// for the same filter are collapsed into a single metadata-only Fetch via
// singleflight. Staleness is bounded by the TTL and is safe regardless:
// the navigation layer clamps any offset that outlives a shrinking
// collection.
type CountCache struct {
	src Source
	ttl time.Duration

	mu      sync.RWMutex
	entries map[pager.Filter]countEntry
	group   singleflight.Group

	// now is stubbed in tests.
	now func() time.Time
}

// NewCountCache wraps src with a count cache. A non-positive ttl falls back
// to DefaultCountTTL.
func NewCountCache(src Source, ttl time.Duration) *CountCache {
	if ttl <= 0 {
		ttl = DefaultCountTTL
	}
	return &CountCache{
		src:     src,
		ttl:     ttl,
		entries: make(map[pager.Filter]countEntry),
		now:     time.Now,
	}
}

// Count returns the total size of the filtered set, from cache when fresh.
func (c *CountCache) Count(ctx context.Context, filter pager.Filter) (int, error) {
	c.mu.RLock()
	entry, ok := c.entries[filter]
	c.mu.RUnlock()
	if ok && !entry.expired(c.now()) {
		return entry.total, nil
	}

	v, err, _ := c.group.Do(string(filter), func() (any, error) {
		_, total, fetchErr := c.src.Fetch(ctx, filter, 0, 0)
		if fetchErr != nil {
			return 0, fetchErr
		}
		c.mu.Lock()
		c.entries[filter] = countEntry{total: total, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return total, nil
	})
	if err != nil {
		return 0, err
	}
	total, _ := v.(int)
	return total, nil
}

// Invalidate drops the cached count for filter, forcing the next Count to
// hit the source. Called after writes to the backing store.
func (c *CountCache) Invalidate(filter pager.Filter) {
	c.mu.Lock()
	delete(c.entries, filter)
	c.mu.Unlock()
}

// Fetch implements Source, passing record reads through while keeping the
// cache warm with the totals the source reports.
func (c *CountCache) Fetch(ctx context.Context, filter pager.Filter, offset, limit int) ([]pager.Record, int, error) {
	if limit == 0 {
		total, err := c.Count(ctx, filter)
		return nil, total, err
	}

	records, total, err := c.src.Fetch(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	c.mu.Lock()
	c.entries[filter] = countEntry{total: total, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return records, total, nil
}
