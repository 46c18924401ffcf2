// Package memcache provides the process-local caches: a keyed TTL cache for
// aggregated search results and an expiry-free map for photo records.
package memcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// TTLCache maps a derived key to a value with a creation timestamp. Entries
// expire lazily on read; there is no background sweep and no size bound.
// Concurrent Get/Set from multiple requests is safe, but a simultaneous miss
// on one key lets each caller re-fetch upstream (accepted stampede, no
// single-flight).
type TTLCache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	ttl   time.Duration

	// now is replaceable in tests.
	now func() time.Time
}

// NewTTLCache creates a cache whose entries live for ttl.
func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the value for key. An entry older than the TTL is deleted and
// reported as a miss.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed
		// the entry.
		if cur, exists := c.items[key]; exists && c.now().Sub(cur.createdAt) > c.ttl {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, stamping it with the current time. Last write
// wins; entries are idempotent derivations of upstream truth.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, createdAt: c.now()}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// SetClock replaces the cache's time source. Tests only.
func (c *TTLCache[V]) SetClock(now func() time.Time) { c.now = now }

// Store is an expiry-free concurrent map used as the photo memory tier; it
// relies on process restart for eviction.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// NewStore creates an empty store.
func NewStore[V any]() *Store[V] {
	return &Store[V]{items: make(map[string]V)}
}

// Get returns the value for key.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores value under key, last write wins.
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
}
