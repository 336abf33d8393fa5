package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/guttosm/catalog-service/internal/metrics"
)

// LRU is a Store that evicts the least recently read entry when full.
// It keeps the same TTL contract as FIFO; only the eviction choice differs.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	clock   Clock
	lru     *simplelru.LRU[string, lruEntry[V]]

	hits      int64
	misses    int64
	evictions int64
}

type lruEntry[V any] struct {
	value      V
	insertedAt time.Time
}

// NewLRU creates an LRU store.
func NewLRU[V any](maxSize int, ttl time.Duration, clock Clock) (*LRU[V], error) {
	if clock == nil {
		clock = time.Now
	}
	l, err := simplelru.NewLRU[string, lruEntry[V]](maxSize, nil)
	if err != nil {
		return nil, err
	}
	metrics.UpdateCacheMetrics(0, maxSize)
	return &LRU[V]{
		maxSize: maxSize,
		ttl:     ttl,
		clock:   clock,
		lru:     l,
	}, nil
}

// Get returns the value for key if present and fresh. Only fresh hits count
// as a use for eviction purposes.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Peek(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		var zero V
		return zero, false
	}
	if !valid(e.insertedAt, c.clock(), c.ttl) {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		var zero V
		return zero, false
	}

	c.lru.Get(key)
	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

// Set stores value under key.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if evicted := c.lru.Add(key, lruEntry[V]{value: value, insertedAt: c.clock()}); evicted {
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheMetrics(c.lru.Len(), c.maxSize)
}

// Delete removes key and reports whether it was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := c.lru.Remove(key)
	if ok {
		metrics.RecordCacheOperation("delete", "success")
		metrics.UpdateCacheMetrics(c.lru.Len(), c.maxSize)
	}
	return ok
}

// Clear removes all entries.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
	metrics.RecordCacheOperation("clear", "success")
	metrics.UpdateCacheMetrics(0, c.maxSize)
}

// Stats returns the current size, bound and keys from least to most recently used.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:      c.lru.Len(),
		MaxSize:   c.maxSize,
		Keys:      c.lru.Keys(),
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}
