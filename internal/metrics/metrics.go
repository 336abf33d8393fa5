// Package metrics provides Prometheus metrics collection for the catalog service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ContentFetchTotal counts remote content fetches by resource and outcome.
	ContentFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_total",
			Help: "Total number of remote content fetches",
		},
		[]string{"resource", "outcome"},
	)

	// ContentFetchDuration tracks remote fetch latency.
	ContentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Remote content fetch duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// FallbackServedTotal counts responses served from the built-in dataset.
	FallbackServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fallback_served_total",
			Help: "Total number of accessor calls answered with fallback data",
		},
		[]string{"resource"},
	)

	// FetchCoalescedTotal counts callers that shared another caller's in-flight fetch.
	FetchCoalescedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_coalesced_total",
			Help: "Total number of fetches satisfied by an in-flight request for the same key",
		},
		[]string{"resource"},
	)

	// BusPublishedTotal counts events published on the notification bus.
	BusPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_events_published_total",
			Help: "Total number of events published on the notification bus",
		},
		[]string{"event"},
	)

	// BusHandlerFailuresTotal counts handlers that returned an error or panicked.
	BusHandlerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_handler_failures_total",
			Help: "Total number of notification handler failures",
		},
		[]string{"event"},
	)

	// EventStreamClients reports open server-sent event connections.
	EventStreamClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_stream_clients",
			Help: "Number of open event stream connections",
		},
	)

	// EventStreamDroppedTotal counts events a slow stream client never received.
	EventStreamDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_stream_dropped_total",
			Help: "Total number of events dropped because a stream buffer was full",
		},
	)

	// CircuitBreakerState reports breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter, by route.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	// ActivityLogEntriesTotal counts activity log entries by what became of
	// them: written, failed or dropped.
	ActivityLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_log_entries_total",
			Help: "Total number of activity log entries by result",
		},
		[]string{"result"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordFetch records the outcome and latency of one remote fetch.
func RecordFetch(resource, outcome string, duration time.Duration) {
	ContentFetchTotal.WithLabelValues(resource, outcome).Inc()
	ContentFetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordFallback records an accessor call answered from the fallback dataset.
func RecordFallback(resource string) {
	FallbackServedTotal.WithLabelValues(resource).Inc()
}

// RecordCoalesced records a caller that joined an in-flight fetch.
func RecordCoalesced(resource string) {
	FetchCoalescedTotal.WithLabelValues(resource).Inc()
}

// RecordPublish records a bus publication and how many handlers failed.
func RecordPublish(event string, failures int) {
	BusPublishedTotal.WithLabelValues(event).Inc()
	if failures > 0 {
		BusHandlerFailuresTotal.WithLabelValues(event).Add(float64(failures))
	}
}

// RecordBreakerState records a circuit breaker state transition.
func RecordBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordActivityLog records n activity log entries with the given result.
func RecordActivityLog(result string, n int) {
	if n > 0 {
		ActivityLogEntriesTotal.WithLabelValues(result).Add(float64(n))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// RecordRateLimited records a rejected request. path is the route template.
func RecordRateLimited(path string) {
	if path == "" {
		path = "unmatched"
	}
	RateLimitedTotal.WithLabelValues(path).Inc()
}

// StreamOpened records a new event stream connection.
func StreamOpened() {
	EventStreamClients.Inc()
}

// StreamClosed records a closed event stream connection and the events it dropped.
func StreamClosed(dropped int64) {
	EventStreamClients.Dec()
	if dropped > 0 {
		EventStreamDroppedTotal.Add(float64(dropped))
	}
}
