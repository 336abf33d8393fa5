// Package circuitbreaker guards calls to unreliable dependencies such as the
// remote content source and the activity log store.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned by Execute while calls are being short-circuited.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of a breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down has elapsed.
	StateOpen
	// StateHalfOpen lets trial calls through to probe the dependency.
	StateHalfOpen
)

var stateNames = map[State]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Config tunes a breaker.
type Config struct {
	// FailureThreshold consecutive failures open a closed circuit.
	FailureThreshold int
	// SuccessThreshold consecutive successes close a half-open circuit.
	SuccessThreshold int
	// Timeout is how long an open circuit rejects calls before probing.
	Timeout time.Duration
	// Name identifies the breaker in logs, metrics and health output.
	Name string
	// IsFailure reports whether err should count against the circuit.
	// When nil every error counts.
	IsFailure func(err error) bool
	// OnStateChange runs after each transition, outside the breaker lock.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns the thresholds used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker is safe for concurrent use.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu        sync.RWMutex
	state     State
	failures  int
	successes int
	rejected  int64
	openedAt  time.Time
	lastFail  time.Time
}

// New returns a closed breaker. Thresholds below one are raised to one.
func New(cfg Config) *CircuitBreaker {
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.SuccessThreshold = max(cfg.SuccessThreshold, 1)
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

type transition struct {
	from, to State
}

// Execute calls fn unless the circuit is open. A done ctx is returned as is
// without calling fn or touching the counters.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	allowed, moved := cb.admit()
	cb.announce(moved)
	if !allowed {
		return ErrCircuitOpen
	}

	err := fn()
	cb.announce(cb.record(err))
	return err
}

func (cb *CircuitBreaker) admit() (bool, *transition) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true, nil
	}
	if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
		cb.rejected++
		return false, nil
	}
	cb.successes = 0
	return true, cb.moveTo(StateHalfOpen)
}

func (cb *CircuitBreaker) record(err error) *transition {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil || (cb.cfg.IsFailure != nil && !cb.cfg.IsFailure(err)) {
		cb.failures = 0
		if cb.state != StateHalfOpen {
			cb.successes = 0
			return nil
		}
		cb.successes++
		if cb.successes < cb.cfg.SuccessThreshold {
			return nil
		}
		cb.successes = 0
		return cb.moveTo(StateClosed)
	}

	cb.failures++
	cb.lastFail = cb.now()
	// one failed probe is enough to reopen
	if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
		cb.failures = max(cb.failures, cb.cfg.FailureThreshold)
		cb.openedAt = cb.lastFail
		return cb.moveTo(StateOpen)
	}
	return nil
}

func (cb *CircuitBreaker) moveTo(to State) *transition {
	if cb.state == to {
		return nil
	}
	t := &transition{from: cb.state, to: to}
	cb.state = to
	return t
}

func (cb *CircuitBreaker) announce(t *transition) {
	if t == nil {
		return
	}
	evt := log.Info()
	if t.to == StateOpen {
		evt = log.Warn()
	}
	evt.Str("circuit_breaker", cb.cfg.Name).
		Stringer("from", t.from).
		Stringer("to", t.to).
		Msg("Circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, t.from, t.to)
	}
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected or about to be probed.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a breaker, served by the readiness probe.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	Rejected     int64     `json:"rejected"`
	LastFailure  time.Time `json:"last_failure"`
	IsHealthy    bool      `json:"is_healthy"`
}

// GetStats returns a snapshot of the breaker.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		Rejected:     cb.rejected,
		LastFailure:  cb.lastFail,
		IsHealthy:    cb.state == StateClosed,
	}
}
