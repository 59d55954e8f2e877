package sheets

import (
	"sync"
	"time"
)

// DefaultCacheTTL matches the 5-minute window the site has always used.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	rows [][]string
	at   time.Time
}

// rowCache is a read-through TTL cache keyed by sheet gid. Caching is
// best-effort; concurrent fetches for the same key during an in-flight load
// are not de-duplicated (the backing sheet is read-only in that window).
type rowCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newRowCache(ttl time.Duration) *rowCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &rowCache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
		now:     time.Now,
	}
}

func (c *rowCache) get(key string) ([][]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.at) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.rows, true
}

func (c *rowCache) set(key string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{rows: rows, at: c.now()}
}
