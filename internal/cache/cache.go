// Package cache provides a small in-memory TTL cache used to avoid
// refetching and recomputing signals within the configured window.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	expiration int64
}

// Cache is a concurrency-safe map with per-entry expiration.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{items: make(map[string]entry[V])}
}

// Set stores value under key for the given duration.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get returns the value for key if present and not yet expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || time.Now().UnixNano() > item.expiration {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Delete removes key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Cleanup drops every expired entry. Intended to run periodically so the
// map does not grow unbounded with tickers nobody asks about anymore.
func (c *Cache[V]) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for k, v := range c.items {
		if now > v.expiration {
			delete(c.items, k)
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
