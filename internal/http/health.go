package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
)

const healthCheckTimeout = 2 * time.Second

// Readiness status values.
const (
	statusOK          = "ok"
	statusDegraded    = "degraded"
	statusUnavailable = "unavailable"
)

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker.
type CheckerFunc func(ctx context.Context) error

// Check calls f(ctx).
func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler handles health check endpoints.
//
// Checkers are hard dependencies: a failing checker makes the service not
// ready. Circuit breakers are reported only; with the content source circuit
// open the service still answers from the fallback dataset, so it reports
// "degraded" and stays in rotation.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker registers a dependency that must be healthy for readiness.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running. Used by Kubernetes and other orchestration platforms to determine if the service should be restarted.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns 200 while every hard dependency is healthy. Open circuits are reported as "degraded" without failing the probe, since fallback data keeps the catalog available.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := statusOK
	checks := make(map[string]interface{}, len(h.checkers)+len(h.circuitBreakers))

	for name, err := range h.runChecks(ctx) {
		if err != nil {
			checks[name] = err.Error()
			status = statusUnavailable
			continue
		}
		checks[name] = statusOK
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy && status == statusOK {
			status = statusDegraded
		}
	}

	if len(checks) == 0 {
		checks["service"] = statusOK
	}

	code := http.StatusOK
	if status == statusUnavailable {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": status,
		"checks": checks,
	})
}

// runChecks runs every checker concurrently, so the probe takes as long as
// the slowest dependency rather than their sum.
func (h *HealthHandler) runChecks(ctx context.Context) map[string]error {
	results := make(map[string]error, len(h.checkers))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := checker.Check(ctx)
			mu.Lock()
			results[name] = err
			mu.Unlock()
		}()
	}
	wg.Wait()
	return results
}
