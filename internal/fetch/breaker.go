package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
)

// BreakerGateway wraps a Gateway with circuit breaker protection. While the
// circuit is open, fetches fail fast as network failures.
type BreakerGateway struct {
	next           Gateway
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBreakerGateway creates a BreakerGateway.
func NewBreakerGateway(next Gateway, cb *circuitbreaker.CircuitBreaker) *BreakerGateway {
	return &BreakerGateway{
		next:           next,
		circuitBreaker: cb,
	}
}

// Fetch delegates to the wrapped gateway when the circuit allows it.
func (g *BreakerGateway) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	var body []byte
	err := g.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		body, cbErr = g.next.Fetch(ctx, url, timeout)
		return cbErr
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, &Failure{Kind: KindNetwork, URL: url, Message: "content source circuit open", Err: err}
	}
	if err != nil {
		if _, ok := AsFailure(err); !ok {
			// context errors raised before the call reached the wrapped gateway
			return nil, classify(ctx, url, err)
		}
		return nil, err
	}
	return body, nil
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (g *BreakerGateway) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return g.circuitBreaker
}
