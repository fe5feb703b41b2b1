// Package mem provides in-process implementations of session-scoped
// services.
package mem

import (
	"sync"
	"time"

	"github.com/lpforge/lpextract"
)

// Ensure Cache implements lpextract.ExtractionCache at compile time.
var _ lpextract.ExtractionCache = (*Cache)(nil)

// Cache is a capacity-bounded in-memory extraction cache keyed by
// normalized URL. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*lpextract.CacheEntry
}

// NewCache creates a Cache. A non-positive capacity falls back to
// DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = lpextract.DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*lpextract.CacheEntry, capacity),
	}
}

// Get returns the cached entry for the URL. Entries that fail structural
// validation are removed and reported as a miss so the caller re-extracts.
func (c *Cache) Get(url string) (*lpextract.CacheEntry, bool) {
	key := cacheKey(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if err := entry.Validate(); err != nil {
		delete(c.entries, key)
		return nil, false
	}
	return entry, true
}

// Put stores the extraction for the URL, overwriting any previous entry.
// When the cache is over capacity the entry with the oldest write timestamp
// is evicted.
func (c *Cache) Put(url string, result *lpextract.ExtractionResult, structured *lpextract.StructuredRecord) {
	key := cacheKey(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &lpextract.CacheEntry{
		URL:        key,
		Result:     result,
		Structured: structured,
		SavedAt:    time.Now().UTC(),
	}

	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the entry with the earliest SavedAt.
// Caller must hold the mutex.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.SavedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.SavedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// cacheKey normalizes the URL so lookups are insensitive to scheme and host
// case, default ports, and fragments. Unparseable URLs key on their raw
// form.
func cacheKey(url string) string {
	normalized, err := lpextract.NormalizeURL(url)
	if err != nil {
		return url
	}
	return normalized
}
