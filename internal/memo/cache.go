// Package memo provides a bounded, concurrency-safe memoization cache for
// referentially transparent computations.
//
// Entries are evicted least-recently-used first. Nothing is ever
// invalidated: a key must fully determine its value. Concurrent misses on
// the same key are collapsed so the computation runs once.
package memo

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity holds a few months of daily results for every operation.
const DefaultCapacity = 512

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// Cache memoizes values by string key.
//
// Thread-safety: all methods are safe for concurrent use. When two goroutines
// store the same key the last write wins, which is harmless because values
// for a key are identical.
type Cache struct {
	entries  *lru.Cache[string, any]
	group    singleflight.Group
	capacity int

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{capacity: capacity}
	entries, err := lru.NewWithEvict[string, any](capacity, func(string, any) {
		c.evictions.Add(1)
	})
	if err != nil {
		// only reachable with a non-positive size
		panic(fmt.Sprintf("memo: %v", err))
	}
	c.entries = entries
	return c
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

// Do returns the cached value for key, computing and storing it with fn on a
// miss. Errors are returned to every waiting caller and never cached.
func (c *Cache) Do(key string, fn func() (any, error)) (any, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// another caller may have filled the entry while we waited
		if v, ok := c.entries.Get(key); ok {
			c.hits.Add(1)
			return v, nil
		}
		c.misses.Add(1)
		v, err := fn()
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, v)
		return v, nil
	})
	return v, err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.entries.Len(),
		Capacity:  c.capacity,
	}
}

// Typed wraps Do for a concrete value type.
func Typed[V any](c *Cache, key string, fn func() (V, error)) (V, error) {
	v, err := c.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
