package cache

import (
	"sync"
	"time"
)

// Clock returns the current time; tests substitute a controllable one.
type Clock func() time.Time

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is an in-process map whose entries expire a fixed duration after they were stored.
// Expiry is checked on read; nothing runs in the background.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     Clock
}

// NewTTLCache creates a cache. A nil clock means time.Now; a non-positive ttl disables expiry.
func NewTTLCache[K comparable, V any](ttl time.Duration, clock Clock) *TTLCache[K, V] {
	if clock == nil {
		clock = time.Now
	}
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     clock,
	}
}

// Get returns the live value for key. An expired entry is evicted and reported as a miss.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if c.expired(e) {
		c.mu.Lock()
		// another writer may have refreshed it meanwhile
		if cur, still := c.entries[key]; still && c.expired(cur) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet evicted.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL returns the configured expiry.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl
}

func (c *TTLCache[K, V]) expired(e entry[V]) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(e.storedAt) >= c.ttl
}
