package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded least-recently-used memo keyed by exact, comparable
// parameter tuples. Values are treated as immutable once inserted: a hit
// returns the stored value as-is, so callers must not modify it.
type Cache[K comparable, V any] struct {
	store *lru.Cache[K, V]
}

// New returns a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	store, err := lru.New[K, V](capacity)
	if err != nil {
		// Only reachable with a non-positive capacity.
		panic(err)
	}
	return &Cache[K, V]{store: store}
}

// GetOrCompute returns the value stored under key, computing and inserting
// it on a miss. Identical keys always hit rather than recompute.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.store.Get(key); ok {
		return v
	}
	v := compute()
	c.store.Add(key, v)
	return v
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.store.Len()
}
