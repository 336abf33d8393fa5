package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/metrics"
)

const (
	defaultNumShards      = 16
	defaultSweepInterval  = time.Minute
	visitorIdleMultiplier = 2
)

// window is the fixed-window counter of one client.
type window struct {
	used    int
	started time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	clients map[string]*window
}

// ShardedRateLimiter is a fixed-window, per-client request limiter. Clients
// are spread over shards so concurrent requests from different clients
// rarely share a lock.
type ShardedRateLimiter struct {
	shards   []*limiterShard
	limit    int
	period   time.Duration
	exempt   map[string]struct{}
	now      func() time.Time
	sweep    time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimitOption configures a ShardedRateLimiter.
type RateLimitOption func(*ShardedRateLimiter)

// WithShards sets the number of shards. Values below one keep the default.
func WithShards(n int) RateLimitOption {
	return func(rl *ShardedRateLimiter) {
		if n > 0 {
			rl.shards = newLimiterShards(n)
		}
	}
}

// WithExemptPaths excludes request paths from limiting. Probes and the
// metrics scrape use it so an orchestrator is never throttled.
func WithExemptPaths(paths ...string) RateLimitOption {
	return func(rl *ShardedRateLimiter) {
		for _, p := range paths {
			rl.exempt[p] = struct{}{}
		}
	}
}

// WithLimiterClock replaces time.Now. Used by tests.
func WithLimiterClock(now func() time.Time) RateLimitOption {
	return func(rl *ShardedRateLimiter) {
		if now != nil {
			rl.now = now
		}
	}
}

// NewRateLimiter allows limit requests per client in every period.
func NewRateLimiter(limit int, period time.Duration, opts ...RateLimitOption) *ShardedRateLimiter {
	rl := &ShardedRateLimiter{
		shards: newLimiterShards(defaultNumShards),
		limit:  limit,
		period: period,
		exempt: make(map[string]struct{}),
		now:    time.Now,
		sweep:  defaultSweepInterval,
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.sweepLoop()
	return rl
}

func newLimiterShards(n int) []*limiterShard {
	shards := make([]*limiterShard, n)
	for i := range shards {
		shards[i] = &limiterShard{clients: make(map[string]*window)}
	}
	return shards
}

func (rl *ShardedRateLimiter) shardFor(client string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(client))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take counts one request for client and reports whether it fits in the
// current window along with the requests left in it.
func (rl *ShardedRateLimiter) take(client string) (bool, int) {
	shard := rl.shardFor(client)
	now := rl.now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	w, ok := shard.clients[client]
	if !ok || now.Sub(w.started) >= rl.period {
		shard.clients[client] = &window{used: 1, started: now}
		return true, rl.limit - 1
	}
	if w.used >= rl.limit {
		return false, 0
	}
	w.used++
	return true, rl.limit - w.used
}

// retryAfter returns the seconds until the client's window resets.
func (rl *ShardedRateLimiter) retryAfter(client string) int {
	shard := rl.shardFor(client)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	w, ok := shard.clients[client]
	if !ok {
		return 0
	}
	left := w.started.Add(rl.period).Sub(rl.now())
	secs := int((left + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// RateLimit returns a middleware that limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := rl.exempt[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		client := c.ClientIP()
		allowed, remaining := rl.take(client)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			metrics.RecordRateLimited(c.FullPath())
			c.Header("Retry-After", strconv.Itoa(rl.retryAfter(client)))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *ShardedRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeIdle()
		case <-rl.stopCh:
			return
		}
	}
}

// removeIdle forgets clients whose window ended long enough ago that their
// next request would start a fresh one anyway.
func (rl *ShardedRateLimiter) removeIdle() {
	cutoff := rl.now().Add(-rl.period * visitorIdleMultiplier)

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for client, w := range shard.clients {
			if w.started.Before(cutoff) {
				delete(shard.clients, client)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of clients currently tracked.
func (rl *ShardedRateLimiter) Clients() int {
	total := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		total += len(shard.clients)
		shard.mu.Unlock()
	}
	return total
}
