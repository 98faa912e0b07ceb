package cache

import (
	"context"
	"sync"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/couchcryptid/curve-number-etl/internal/observability"
	"github.com/couchcryptid/curve-number-etl/internal/pipeline"
)

// CachedSource wraps a RasterSource with an in-memory LRU cache of decoded
// blocks. Cached grids are shared between callers and must not be modified.
type CachedSource struct {
	inner   pipeline.RasterSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a raster source holding at
// most maxEntries blocks.
func NewCachedSource(inner pipeline.RasterSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) LoadBlock(ctx context.Context, blockID int) (*domain.Grid, *domain.Grid, error) {
	if b, ok := c.cache.get(blockID); ok {
		c.metrics.RasterCache.WithLabelValues("hit").Inc()
		return b.landCover, b.soil, nil
	}
	c.metrics.RasterCache.WithLabelValues("miss").Inc()

	lc, soil, err := c.inner.LoadBlock(ctx, blockID)
	if err != nil {
		return nil, nil, err
	}
	// Failed reads are not cached so a block that appears later is picked up.
	c.cache.put(blockID, block{landCover: lc, soil: soil})
	return lc, soil, nil
}

type block struct {
	landCover, soil *domain.Grid
}

// lruCache is a simple thread-safe LRU cache of raster blocks keyed by id.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[int]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   int
	value block
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[int]*entry),
	}
}

func (c *lruCache) get(key int) (block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return block{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key int, value block) {
	if c.maxEntries <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
