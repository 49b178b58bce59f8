package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is a TTL cache backed by go-cache. It is safe for concurrent use.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. Expired items are purged every cleanupInterval.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns a copy of the cached value
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// Set stores a copy of value. A zero ttl uses the default TTL.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, append([]byte(nil), value...), ttl)
}

// Delete removes a value
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Len returns the number of cached items, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// Flush removes every value
func (c *MemoryCache) Flush() {
	c.cache.Flush()
}
