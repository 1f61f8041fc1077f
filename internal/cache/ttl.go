package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is an in-process key/value store with time-based expiration.
// Every component shares a single instance; keys are namespaced by the
// caller via Key. Last writer wins on concurrent sets for the same key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stats   struct {
		hits   int64
		misses int64
		sweeps int64
	}
}

type entry struct {
	value    interface{}
	inserted time.Time
	ttl      time.Duration
}

// Stats reports cache performance counters. Hits and misses are
// monotonic for the life of the process.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a cache whose entries expire defaultTTL after insertion.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     defaultTTL,
	}
}

// Get returns the value for key if present and fresh. A stale entry is
// removed and counted as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.misses++
		return nil, false
	}
	if time.Since(e.inserted) >= e.ttl {
		delete(c.entries, key)
		c.stats.misses++
		return nil, false
	}
	c.stats.hits++
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with an entry-specific TTL. Used for the
// few writes that outlive the default window, e.g. trend scores.
func (c *Cache) SetTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, inserted: time.Now(), ttl: ttl}
}

// Sweep removes all stale entries and returns the number removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if time.Since(e.inserted) >= e.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.sweeps++
	return removed
}

// Len returns the number of entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the hit/miss counters and entry count.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{
		Hits:    c.stats.hits,
		Misses:  c.stats.misses,
		Entries: len(c.entries),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// Start runs a periodic sweep until ctx is cancelled.
func (c *Cache) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
