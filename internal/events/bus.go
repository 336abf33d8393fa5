package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/logger"
	"github.com/guttosm/catalog-service/internal/metrics"
)

// Handler receives published events. A returned error is logged and does not
// stop delivery to other handlers.
type Handler func(ctx context.Context, evt Event) error

// Subscription identifies one registration made with Subscribe.
type Subscription struct {
	Event Name
	ID    string
}

type registration struct {
	id      string
	handler Handler
}

// Publisher is the publishing side of the bus.
type Publisher interface {
	Publish(ctx context.Context, name Name, payload interface{})
}

// Bus is a synchronous publish/subscribe fabric keyed by event name.
// Handlers run on the publishing goroutine in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Name][]registration
	log      zerolog.Logger
	now      func() time.Time
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler failures.
func WithLogger(l zerolog.Logger) BusOption {
	return func(b *Bus) {
		b.log = l
	}
}

// WithClock sets the clock used to stamp events.
func WithClock(now func() time.Time) BusOption {
	return func(b *Bus) {
		b.now = now
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		handlers: make(map[Name][]registration),
		log:      logger.Component("bus"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for name. The same handler may be registered
// more than once and is then invoked once per registration.
func (b *Bus) Subscribe(name Name, handler Handler) Subscription {
	sub := Subscription{Event: name, ID: uuid.NewString()}

	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], registration{id: sub.ID, handler: handler})
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes the registration identified by sub.
// Unknown or already removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.Event]
	for i, r := range regs {
		if r.id != sub.ID {
			continue
		}
		// copy so snapshots held by in-progress publishes stay intact
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.Event)
		} else {
			b.handlers[sub.Event] = next
		}
		return
	}
}

// Publish delivers payload to every handler registered for name at the time
// of the call. Handlers added or removed during delivery do not affect it.
func (b *Bus) Publish(ctx context.Context, name Name, payload interface{}) {
	b.mu.RLock()
	snapshot := b.handlers[name]
	b.mu.RUnlock()

	evt := Event{Name: name, Payload: payload, Time: b.now()}
	failures := 0
	for _, r := range snapshot {
		if err := b.invoke(ctx, r, evt); err != nil {
			failures++
			b.log.Warn().
				Err(err).
				Str("event", string(name)).
				Str("subscription", r.id).
				Msg("Event handler failed")
		}
	}
	metrics.RecordPublish(string(name), failures)
}

func (b *Bus) invoke(ctx context.Context, r registration, evt Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()
	return r.handler(ctx, evt)
}

// HandlerCount returns the number of registrations for name.
func (b *Bus) HandlerCount(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}
