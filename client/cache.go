package client

import (
	"strings"
	"sync"
)

// =============================================================================
// QUERY CACHE - In-memory cache of fetched results, keyed by Key
// =============================================================================

// QueryCache stores fetched results keyed by Key. It is an explicit,
// injectable object rather than package-level state so tests can construct
// isolated instances. Writes are last-write-wins per key.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key   Key
	value any
}

// NewQueryCache creates an empty cache.
func NewQueryCache() *QueryCache {
	return &QueryCache{entries: make(map[string]cacheEntry)}
}

// internal map key: \x1f cannot appear in path segments, so the encoding
// is collision-free even when segments contain "/"
func encode(k Key) string { return strings.Join(k, "\x1f") }

// Get returns the cached value for a key.
func (c *QueryCache) Get(k Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[encode(k)]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under a key, replacing any previous value.
func (c *QueryCache) Set(k Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[encode(k)] = cacheEntry{key: k, value: value}
}

// Invalidate removes the exact key. Returns true if an entry was removed.
func (c *QueryCache) Invalidate(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	enc := encode(k)
	_, ok := c.entries[enc]
	delete(c.entries, enc)
	return ok
}

// InvalidatePrefix removes every entry whose key starts with prefix,
// including the prefix itself. Returns the number of entries removed.
func (c *QueryCache) InvalidatePrefix(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for enc, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, enc)
			removed++
		}
	}
	return removed
}

// Clear removes all entries.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached entries.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
