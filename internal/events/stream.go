package events

import (
	"context"
	"sync/atomic"
)

// Stream forwards bus events into a buffered channel for asynchronous
// consumers such as server-sent event connections. Events are dropped when
// the buffer is full so a slow consumer never blocks publishers.
type Stream struct {
	scope   *Scope
	ch      chan Event
	dropped atomic.Int64
	closed  atomic.Bool
}

// NewStream subscribes to names (all known events when empty).
func (b *Bus) NewStream(buffer int, names ...Name) *Stream {
	if buffer <= 0 {
		buffer = 16
	}
	if len(names) == 0 {
		names = All
	}

	s := &Stream{
		scope: b.NewScope(),
		ch:    make(chan Event, buffer),
	}
	for _, n := range names {
		s.scope.Subscribe(n, s.forward)
	}
	return s
}

func (s *Stream) forward(_ context.Context, evt Event) error {
	if s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- evt:
	default:
		s.dropped.Add(1)
	}
	return nil
}

// Events returns the receive side of the stream.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Stream) Dropped() int64 {
	return s.dropped.Load()
}

// Close detaches the stream from the bus. The channel is not closed, since a
// publish already in flight may still hold a snapshot that includes it.
func (s *Stream) Close() {
	s.closed.Store(true)
	s.scope.Close()
}
