// Package cache provides a generic thread-safe LRU cache.
package cache

import "sync"

// Cache is a generic LRU cache with a hard capacity.
// When the cache exceeds its capacity, the least recently used entry is
// evicted.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*cacheEntry[K, V]
	lru      *lruList[K]
	capacity int

	hits   uint64
	misses uint64
}

// cacheEntry holds a cached value with its LRU node.
type cacheEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// New creates a new cache with the given capacity.
// A capacity of 0 means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*cacheEntry[K, V]),
		lru:      newLRUList[K](),
		capacity: capacity,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.lru.MoveToFront(entry.node)
	return entry.value, true
}

// Set stores a value in the cache, evicting the least recently used entry
// when the capacity is exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.value = value
		c.lru.MoveToFront(entry.node)
		return
	}

	c.entries[key] = &cacheEntry[K, V]{
		value: value,
		node:  c.lru.PushFront(key),
	}
	if c.capacity > 0 && len(c.entries) > c.capacity {
		if oldest, ok := c.lru.RemoveOldest(); ok {
			delete(c.entries, oldest)
		}
	}
}

// GetOrCreate returns the cached value for key, calling create to fill the
// slot on a miss. create runs under the cache lock so a key is never created
// twice; keep it cheap or use Get/Set when creation can block.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.hits++
		c.lru.MoveToFront(entry.node)
		return entry.value
	}
	c.misses++

	value := create()
	c.entries[key] = &cacheEntry[K, V]{
		value: value,
		node:  c.lru.PushFront(key),
	}
	if c.capacity > 0 && len(c.entries) > c.capacity {
		if oldest, ok := c.lru.RemoveOldest(); ok {
			delete(c.entries, oldest)
		}
	}
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	c.lru.Remove(entry.node)
	delete(c.entries, key)
	return true
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.lru.Clear()
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the configured capacity (0 means unlimited).
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns the hit and miss counters.
func (c *Cache[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
