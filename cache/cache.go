// Package cache provides a bounded in-memory content cache with
// insertion-order (FIFO) eviction.
//
// The cache is a process-local optimization, not a source of truth: entries
// hold immutable template content keyed by repository, path, and commit, so
// a stale read is impossible and eviction only costs a refetch. Reads do not
// affect eviction order; overwriting an existing key removes and re-inserts
// it, refreshing its position as newest.
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the entry limit used when no capacity is configured.
const DefaultCapacity = 100

// Cache is a fixed-capacity string cache with FIFO eviction.
// It is safe for concurrent use; for overlapping writes to the same key,
// last write wins.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = newest insertion, back = oldest
}

// entry is the value stored in the insertion-order list.
type entry struct {
	key   string
	value string
}

// New creates a cache holding at most capacity entries.
// A capacity of zero or less falls back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached value for key.
// The second return value reports whether the key was present.
// Reads never change eviction order.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return "", false
	}
	return elem.Value.(*entry).value, true
}

// Set stores value under key.
// Setting an existing key removes the prior entry first, then inserts, so
// the key becomes the most-recently-inserted for eviction purposes. After
// the insert, the oldest entries are evicted until size fits the capacity.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, value: value})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

// Len returns the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the fixed entry limit.
func (c *Cache) Capacity() int {
	return c.capacity
}
