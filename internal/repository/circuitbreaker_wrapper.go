package repository

import (
	"context"
	"errors"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
)

// LogsRepositoryWithCircuitBreaker runs every call of the wrapped repository
// through a circuit breaker. Writes made while the circuit is open are
// dropped without error; the activity log must never fail a request.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	err := r.cb.Execute(ctx, fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func guardedRead[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var readErr error
		out, readErr = fn()
		return readErr
	})
	return out, err
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guardedRead(ctx, r.cb, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guardedRead(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) TopEntities(ctx context.Context, opts TopEntitiesOptions) ([]*EntityCountDocument, error) {
	return guardedRead(ctx, r.cb, func() ([]*EntityCountDocument, error) { return r.repo.TopEntities(ctx, opts) })
}

// GetCircuitBreaker returns the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
