// Package cache implements the bounded, time-limited content cache.
//
// Entries are valid while now-insertedAt < TTL. Expired entries are treated as
// absent on read but are not removed until evicted or cleared. When the store
// is full, inserting a new key evicts exactly one entry chosen by the policy.
package cache

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Policy names accepted by New.
const (
	PolicyFIFO = "fifo"
	PolicyLRU  = "lru"
)

// Store is a bounded key/value cache with lazy TTL invalidation.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string) bool
	Clear()
	Stats() Stats
}

// Stats is a point-in-time snapshot of a Store.
type Stats struct {
	Size      int      `json:"size"`
	MaxSize   int      `json:"max_size"`
	Keys      []string `json:"keys"`
	Hits      int64    `json:"hits"`
	Misses    int64    `json:"misses"`
	Evictions int64    `json:"evictions"`
}

// Clock returns the current time. Tests replace it to simulate elapsed time.
type Clock func() time.Time

// Config configures a Store.
type Config struct {
	MaxSize int
	TTL     time.Duration
	Policy  string
	Clock   Clock
}

// New creates a Store using the configured eviction policy (FIFO by default).
func New[V any](cfg Config) (Store[V], error) {
	if cfg.MaxSize <= 0 {
		return nil, fmt.Errorf("cache: max size must be positive, got %d", cfg.MaxSize)
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache: ttl must be positive, got %s", cfg.TTL)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	switch strings.ToLower(cfg.Policy) {
	case "", PolicyFIFO:
		return NewFIFO[V](cfg.MaxSize, cfg.TTL, cfg.Clock), nil
	case PolicyLRU:
		return NewLRU[V](cfg.MaxSize, cfg.TTL, cfg.Clock)
	default:
		return nil, fmt.Errorf("cache: unknown eviction policy %q", cfg.Policy)
	}
}

// Key builds a cache key from a resource name and its parameters.
// Parameters are escaped so distinct inputs never produce the same key.
func Key(resource string, params ...string) string {
	if len(params) == 0 {
		return resource
	}
	var b strings.Builder
	b.WriteString(resource)
	for _, p := range params {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

func valid(insertedAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(insertedAt) < ttl
}
