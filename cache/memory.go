// Package cache provides in-memory caching of compatibility verdicts.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the cache so a long-lived host process cannot
// grow it without limit. Expiry alone is lazy (checked on read), so the LRU
// bound is what keeps abandoned keys from accumulating.
const DefaultMaxEntries = 4096

// Entry represents a cached value with its expiry.
type Entry struct {
	Value  any
	Expiry time.Time
}

// IsExpired checks if the entry has exceeded its TTL.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expiry)
}

// MemoryCache is an LRU cache with per-entry TTL.
//
// A stored nil value is a real entry ("checked, no issue"), distinct from a
// miss; Get's second return distinguishes the two.
type MemoryCache struct {
	maxEntries int

	mu      sync.Mutex
	entries map[string]*list.Element
	lruList *list.List
}

// lruEntry wraps cache key and entry for the LRU list.
type lruEntry struct {
	key   string
	entry *Entry
}

// NewMemoryCache creates a new LRU memory cache holding at most maxEntries
// entries. A non-positive maxEntries uses DefaultMaxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		lruList:    list.New(),
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if present and not expired, (nil, false) otherwise.
// Expiry is checked only here; expired entries are dropped on read.
func (mc *MemoryCache) Get(key string) (any, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	elem, ok := mc.entries[key]
	if !ok {
		return nil, false
	}

	lruEnt := elem.Value.(*lruEntry)

	if lruEnt.entry.IsExpired() {
		mc.removeElement(elem)
		return nil, false
	}

	mc.lruList.MoveToFront(elem)
	return lruEnt.entry.Value, true
}

// Set adds or updates a value, stamping a fresh expiry unconditionally.
func (mc *MemoryCache) Set(key string, value any, ttl time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	expiry := time.Now().Add(ttl)

	if elem, ok := mc.entries[key]; ok {
		lruEnt := elem.Value.(*lruEntry)
		lruEnt.entry.Value = value
		lruEnt.entry.Expiry = expiry
		mc.lruList.MoveToFront(elem)
		return
	}

	elem := mc.lruList.PushFront(&lruEntry{
		key:   key,
		entry: &Entry{Value: value, Expiry: expiry},
	})
	mc.entries[key] = elem

	for mc.lruList.Len() > mc.maxEntries {
		if back := mc.lruList.Back(); back != nil {
			mc.removeElement(back)
		}
	}
}

// Delete removes a key from the cache.
func (mc *MemoryCache) Delete(key string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if elem, ok := mc.entries[key]; ok {
		mc.removeElement(elem)
	}
}

// Clear removes all entries from the cache.
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries = make(map[string]*list.Element)
	mc.lruList = list.New()
}

// Len returns the number of live entries, including any not yet observed
// as expired.
func (mc *MemoryCache) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.entries)
}

// removeElement removes an element from the cache. Caller must hold the lock.
func (mc *MemoryCache) removeElement(elem *list.Element) {
	lruEnt := elem.Value.(*lruEntry)
	delete(mc.entries, lruEnt.key)
	mc.lruList.Remove(elem)
}
