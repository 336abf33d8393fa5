package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/catalog-service/internal/metrics"
)

// FIFO is a Store that evicts the earliest inserted entry when full.
// Overwriting an existing key swaps in a new entry at the old entry's
// position in the eviction order. Entries are never modified once stored.
type FIFO[V any] struct {
	mu      sync.RWMutex
	maxSize int
	ttl     time.Duration
	clock   Clock
	items   map[string]*entry[V]
	// newest at head, oldest at tail
	head *entry[V]
	tail *entry[V]

	hits      int64
	misses    int64
	evictions int64
}

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	prev       *entry[V]
	next       *entry[V]
}

// NewFIFO creates a FIFO store.
func NewFIFO[V any](maxSize int, ttl time.Duration, clock Clock) *FIFO[V] {
	if clock == nil {
		clock = time.Now
	}
	metrics.UpdateCacheMetrics(0, maxSize)
	return &FIFO[V]{
		maxSize: maxSize,
		ttl:     ttl,
		clock:   clock,
		items:   make(map[string]*entry[V], maxSize),
	}
}

// Get returns the value for key if it is present and still within its TTL.
func (c *FIFO[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	var (
		value      V
		insertedAt time.Time
	)
	if ok {
		value, insertedAt = e.value, e.insertedAt
	}
	c.mu.RUnlock()

	if !ok {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "miss")
		var zero V
		return zero, false
	}
	if !valid(insertedAt, c.clock(), c.ttl) {
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation("get", "expired")
		var zero V
		return zero, false
	}

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation("get", "hit")
	return value, true
}

// Set stores value under key, evicting the oldest entry if the store is full.
func (c *FIFO[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if old, ok := c.items[key]; ok {
		c.replace(old, &entry[V]{key: key, value: value, insertedAt: now})
		metrics.RecordCacheOperation("set", "replace")
		return
	}

	if len(c.items) >= c.maxSize {
		c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation("evict", "capacity")
	}

	e := &entry[V]{key: key, value: value, insertedAt: now}
	c.items[key] = e
	c.addToFront(e)
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheMetrics(len(c.items), c.maxSize)
}

// Delete removes key and reports whether it was present.
func (c *FIFO[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	delete(c.items, key)
	c.unlink(e)
	metrics.RecordCacheOperation("delete", "success")
	metrics.UpdateCacheMetrics(len(c.items), c.maxSize)
	return true
}

// Clear removes all entries. Counters are kept.
func (c *FIFO[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V], c.maxSize)
	c.head = nil
	c.tail = nil

	metrics.RecordCacheOperation("clear", "success")
	metrics.UpdateCacheMetrics(0, c.maxSize)
}

// Stats returns the current size, bound and keys from oldest to newest.
func (c *FIFO[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for e := c.tail; e != nil; e = e.prev {
		keys = append(keys, e.key)
	}
	return Stats{
		Size:      len(c.items),
		MaxSize:   c.maxSize,
		Keys:      keys,
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}

func (c *FIFO[V]) addToFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

// replace puts fresh where old is in the list and the index.
func (c *FIFO[V]) replace(old, fresh *entry[V]) {
	fresh.prev, fresh.next = old.prev, old.next
	if old.prev != nil {
		old.prev.next = fresh
	} else {
		c.head = fresh
	}
	if old.next != nil {
		old.next.prev = fresh
	} else {
		c.tail = fresh
	}
	old.prev, old.next = nil, nil
	c.items[old.key] = fresh
}

func (c *FIFO[V]) unlink(e *entry[V]) {
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
	e.prev, e.next = nil, nil
}

func (c *FIFO[V]) removeTail() {
	if c.tail == nil {
		return
	}
	oldest := c.tail
	delete(c.items, oldest.key)
	c.unlink(oldest)
}
