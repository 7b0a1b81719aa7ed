// Package cache implements a fixed-capacity LRU cache with per-entry TTL.
// Expiry is evaluated lazily at read time; nothing sweeps in the background.
// All operations are safe for concurrent use.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/agendou/linkresolver/cachekey"
)

type entry[V any] struct {
	key       string
	value     V
	timestamp time.Time
	ttl       time.Duration
}

// Cache is a string-keyed LRU cache with TTL. Every successful Get or Set
// promotes the entry to most-recently-used; inserting beyond capacity evicts
// exactly one entry, the least recently used.
type Cache[V any] struct {
	mu         sync.Mutex
	capacity   int
	defaultTTL time.Duration
	order      *list.List // front = most recently used
	items      map[string]*list.Element
	now        func() time.Time
}

// Config holds construction parameters for a Cache.
type Config struct {
	Capacity   int
	DefaultTTL time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

const (
	DefaultCapacity = 500
	DefaultTTL      = 5 * time.Minute
)

// New creates a Cache with the given configuration. Zero or negative
// capacity/TTL fall back to the package defaults.
func New[V any](cfg Config) *Cache[V] {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Cache[V]{
		capacity:   capacity,
		defaultTTL: ttl,
		order:      list.New(),
		items:      make(map[string]*list.Element, capacity),
		now:        now,
	}
}

// Get returns the value for key. An expired entry is removed and reported as
// a miss; a live entry is promoted to most-recently-used.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	ent := el.Value.(*entry[V])
	if c.expired(ent) {
		c.remove(el)
		return zero, false
	}

	c.order.MoveToFront(el)
	return ent.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL. Re-setting an existing
// key refreshes its timestamp and promotes it.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[V])
		ent.value = value
		ent.timestamp = c.now()
		ent.ttl = ttl
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		if tail := c.order.Back(); tail != nil {
			c.remove(tail)
		}
	}

	el := c.order.PushFront(&entry[V]{
		key:       key,
		value:     value,
		timestamp: c.now(),
		ttl:       ttl,
	})
	c.items[key] = el
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.remove(el)
	return true
}

// Has reports whether key holds a live entry. An expired entry is removed
// and reported as absent. Has does not affect LRU order.
func (c *Cache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	if c.expired(el.Value.(*entry[V])) {
		c.remove(el)
		return false
	}
	return true
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// CleanExpired removes every expired entry and returns the count removed.
// LRU order of surviving entries is untouched.
func (c *Cache[V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*entry[V])) {
			c.remove(el)
			removed++
		}
		el = next
	}
	return removed
}

// Len returns the number of entries currently held, including any that have
// expired but not yet been touched.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns the keys matching the given wildcard pattern, most recently
// used first. Intended for inspection and debugging, not the hot path.
func (c *Cache[V]) Keys(pattern string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	for el := c.order.Front(); el != nil; el = el.Next() {
		k := el.Value.(*entry[V]).key
		if cachekey.Match(pattern, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Stats describes the current state of a cache for operational endpoints.
type Stats struct {
	Size     int        `json:"size"`
	Capacity int        `json:"capacity"`
	Oldest   *time.Time `json:"oldest,omitempty"`
	Newest   *time.Time `json:"newest,omitempty"`
}

// Stats returns size, capacity and the oldest/newest entry timestamps.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Stats{
		Size:     c.order.Len(),
		Capacity: c.capacity,
	}

	for el := c.order.Front(); el != nil; el = el.Next() {
		ts := el.Value.(*entry[V]).timestamp
		if st.Oldest == nil || ts.Before(*st.Oldest) {
			t := ts
			st.Oldest = &t
		}
		if st.Newest == nil || ts.After(*st.Newest) {
			t := ts
			st.Newest = &t
		}
	}
	return st
}

func (c *Cache[V]) expired(ent *entry[V]) bool {
	return c.now().Sub(ent.timestamp) > ent.ttl
}

// remove must be called with c.mu held.
func (c *Cache[V]) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[V]).key)
}
