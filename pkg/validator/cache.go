package validator

import (
	"sync/atomic"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes verdicts by normalized URL for the lifetime of one run.
// A fresh Cache is created per run and never persisted.
//
// Concurrent lookups of the same key share a single check.
type Cache struct {
	store *cache.Cache
	group singleflight.Group
	hits  atomic.Int64
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{store: cache.New(cache.NoExpiration, 0)}
}

// Get returns the cached verdict for key.
func (c *Cache) Get(key string) (live bool, ok bool) {
	v, found := c.store.Get(key)
	if !found {
		return false, false
	}
	return v.(bool), true
}

// Do returns the verdict for key, running check only if no verdict is cached
// and no other goroutine is already checking the same key.
func (c *Cache) Do(key string, check func() bool) bool {
	if live, ok := c.Get(key); ok {
		c.hits.Add(1)
		return live
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		if live, ok := c.Get(key); ok {
			c.hits.Add(1)
			return live, nil
		}
		live := check()
		c.store.Set(key, live, cache.NoExpiration)
		return live, nil
	})
	return v.(bool)
}

// Hits returns how many lookups were answered from the cache.
func (c *Cache) Hits() int64 {
	return c.hits.Load()
}

// Len returns the number of cached verdicts.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
