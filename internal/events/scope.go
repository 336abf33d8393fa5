package events

import "sync"

// Scope groups subscriptions made by one component so they can be released
// together when the component shuts down.
type Scope struct {
	bus    *Bus
	mu     sync.Mutex
	subs   []Subscription
	closed bool
}

// NewScope creates a Scope bound to the bus.
func (b *Bus) NewScope() *Scope {
	return &Scope{bus: b}
}

// Subscribe registers handler on the underlying bus and records it.
// After Close it is a no-op and returns a zero Subscription.
func (s *Scope) Subscribe(name Name, handler Handler) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Subscription{}
	}
	sub := s.bus.Subscribe(name, handler)
	s.subs = append(s.subs, sub)
	return sub
}

// Len returns the number of live subscriptions held by the scope.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close unsubscribes everything registered through the scope. It is safe to
// call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		s.bus.Unsubscribe(sub)
	}
}
