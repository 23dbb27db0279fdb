package optimizer

import (
	"sync"
	"time"
)

// CacheStats is the observability surface of spec.md §4.10, exposed to the
// host via the cache_stats() operation.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

type cacheEntry struct {
	result    *OptimizationResult
	expiresAt time.Time
	// element links this entry into the LRU order; nil once evicted.
	element *lruNode
}

type lruNode struct {
	key        string
	prev, next *lruNode
}

// ResultCache memoizes completed runs by input fingerprint, bounded by size
// with LRU eviction and per-entry TTL (spec.md §4.10). Concurrent
// ComputeOrGet calls for the same key cause at most one runner invocation;
// waiters block on a per-key completion channel rather than the map mutex,
// matching spec.md §5's "waiting MUST NOT hold the map mutex" requirement.
// No generic cache or singleflight package appears in any example repo's
// go.mod, so this is hand-rolled from sync.Mutex and channels rather than
// importing one sight-unseen (see DESIGN.md).
type ResultCache struct {
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	inFlight   map[string]*inFlightCall
	maxEntries int
	ttl        time.Duration

	lruHead, lruTail *lruNode

	hits, misses, evictions int64
}

type inFlightCall struct {
	done   chan struct{}
	result *OptimizationResult
	err    error
}

// NewResultCache creates a cache with the given bounds.
func NewResultCache(maxEntries int, ttl time.Duration) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{
		entries:    make(map[string]*cacheEntry),
		inFlight:   make(map[string]*inFlightCall),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// ComputeOrGet returns the cached result for key if present and unexpired,
// otherwise invokes runner exactly once (across any number of concurrent
// callers for the same key) and caches a successful result. A failing
// runner's error is never cached; the next caller retries (spec.md §4.10).
func (c *ResultCache) ComputeOrGet(key string, runner func() (*OptimizationResult, error)) (*OptimizationResult, error, bool) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if time.Now().Before(entry.expiresAt) {
			c.hits++
			c.touch(entry)
			c.mu.Unlock()
			return entry.result, nil, true
		}
		c.removeLocked(key, entry)
	}

	if call, ok := c.inFlight[key]; ok {
		c.mu.Unlock()
		<-call.done
		return call.result, call.err, call.err == nil
	}

	c.misses++
	call := &inFlightCall{done: make(chan struct{})}
	c.inFlight[key] = call
	c.mu.Unlock()

	result, err := runner()

	c.mu.Lock()
	delete(c.inFlight, key)
	if err == nil {
		c.insertLocked(key, result)
	}
	c.mu.Unlock()

	call.result, call.err = result, err
	close(call.done)

	return result, err, false
}

func (c *ResultCache) insertLocked(key string, result *OptimizationResult) {
	node := &lruNode{key: key}
	entry := &cacheEntry{result: result, expiresAt: time.Now().Add(c.ttl), element: node}
	c.entries[key] = entry
	c.pushFront(node)
	for len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

func (c *ResultCache) removeLocked(key string, entry *cacheEntry) {
	delete(c.entries, key)
	c.unlink(entry.element)
}

func (c *ResultCache) evictOldest() {
	tail := c.lruTail
	if tail == nil {
		return
	}
	delete(c.entries, tail.key)
	c.unlink(tail)
	c.evictions++
}

func (c *ResultCache) touch(entry *cacheEntry) {
	c.unlink(entry.element)
	c.pushFront(entry.element)
}

func (c *ResultCache) pushFront(n *lruNode) {
	n.prev = nil
	n.next = c.lruHead
	if c.lruHead != nil {
		c.lruHead.prev = n
	}
	c.lruHead = n
	if c.lruTail == nil {
		c.lruTail = n
	}
}

func (c *ResultCache) unlink(n *lruNode) {
	if n == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else if c.lruHead == n {
		c.lruHead = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if c.lruTail == n {
		c.lruTail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Stats returns a snapshot of the cache's counters.
func (c *ResultCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.entries)}
}

// Clear empties the cache unconditionally.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	c.lruHead, c.lruTail = nil, nil
}

// Cleanup removes expired entries without waiting for a lookup to trigger
// eviction, per the caller-invoked cleanup() operation of spec.md §4.10.
func (c *ResultCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.removeLocked(key, entry)
			removed++
		}
	}
	return removed
}
