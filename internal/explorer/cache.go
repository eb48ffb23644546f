package explorer

import (
	"container/list"
	"path/filepath"
	"sync"
	"time"
)

// cacheEntry is one memoized listing.
type cacheEntry struct {
	path    string
	entries []Entry
	fetched time.Time
	recency *list.Element
}

// CacheMetrics receives hit/miss signals from the cache.
type CacheMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Cache memoizes recent directory listings so repeated navigation (Up, Home,
// breadcrumbs) does not hit the OS again. Entries expire after a TTL and the
// least-recently-used listing is evicted once the bound is exceeded. The
// cache never mutates stored slices; hits return the same ordered result the
// lister produced.
type Cache struct {
	lister  *Lister
	ttl     time.Duration
	maxSize int
	metrics CacheMetrics

	mu      sync.Mutex
	entries map[string]*cacheEntry
	lru     *list.List // front = most recently used

	hits   uint64
	misses uint64
}

// NewCache wraps lister with a TTL+LRU memoization layer. maxSize and ttl are
// tunables, not correctness properties. metrics may be nil.
func NewCache(lister *Lister, maxSize int, ttl time.Duration, metrics CacheMetrics) *Cache {
	if maxSize <= 0 {
		maxSize = 128
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{
		lister:  lister,
		ttl:     ttl,
		maxSize: maxSize,
		metrics: metrics,
		entries: make(map[string]*cacheEntry),
		lru:     list.New(),
	}
}

// Get returns the listing for path, serving from cache when present and not
// expired, otherwise delegating to the lister and storing the result. Lister
// errors are never cached.
func (c *Cache) Get(path string) ([]Entry, error) {
	path = filepath.Clean(path)

	c.mu.Lock()
	if ce, ok := c.entries[path]; ok && time.Since(ce.fetched) < c.ttl {
		c.lru.MoveToFront(ce.recency)
		c.hits++
		entries := ce.entries
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordCacheHit()
		}
		return entries, nil
	}
	c.misses++
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}

	// List outside the lock; the lister can block on OS I/O.
	entries, err := c.lister.List(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ce, ok := c.entries[path]; ok {
		ce.entries = entries
		ce.fetched = time.Now()
		c.lru.MoveToFront(ce.recency)
		return entries, nil
	}
	ce := &cacheEntry{path: path, entries: entries, fetched: time.Now()}
	ce.recency = c.lru.PushFront(ce)
	c.entries[path] = ce
	for len(c.entries) > c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		evicted := c.lru.Remove(oldest).(*cacheEntry)
		delete(c.entries, evicted.path)
	}
	return entries, nil
}

// Invalidate drops the cached listing for path, if any.
func (c *Cache) Invalidate(path string) {
	path = filepath.Clean(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	if ce, ok := c.entries[path]; ok {
		c.lru.Remove(ce.recency)
		delete(c.entries, path)
	}
}

// InvalidateAll drops every cached listing.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.lru.Init()
}

// Stats reports hit/miss counters and current size.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return map[string]interface{}{
		"size":   len(c.entries),
		"hits":   c.hits,
		"misses": c.misses,
	}
}
