package dataflows

import (
	"sync"
	"time"
)

// Cache is a TTL memory cache for provider responses.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	enabled bool
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// NewCache creates a cache with the given TTL. A disabled cache misses on
// every lookup.
func NewCache(ttl time.Duration, enabled bool) *Cache {
	return &Cache{
		ttl:     ttl,
		enabled: enabled,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached value for key if it is still fresh.
func (c *Cache) Get(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores a value under key.
func (c *Cache) Set(key string, value any) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: time.Now()}
	c.mu.Unlock()
}
