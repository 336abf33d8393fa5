// Package analytics turns UI and data-layer bus events into activity log
// entries.
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/events"
	"github.com/guttosm/catalog-service/internal/logger"
)

// Action types stored on recorded entries.
const (
	ActionSelection  = "selection"
	ActionLoadError  = "load_error"
	ActionCacheClear = "cache_clear"
)

// Sink accepts log entries without blocking. It reports false when the entry
// was dropped.
type Sink interface {
	Log(entry *model.LogEntry) bool
}

// Recorder subscribes to the bus and forwards selected events to a Sink.
type Recorder struct {
	sink  Sink
	scope *events.Scope
	log   zerolog.Logger
}

// Recorded lists the events a Recorder persists.
var Recorded = []events.Name{
	events.CategorySelected,
	events.CourseSelected,
	events.ErrorOccurred,
	events.CacheCleared,
}

// Start subscribes a new Recorder to bus. Call Stop to unsubscribe.
func Start(bus *events.Bus, sink Sink) *Recorder {
	r := &Recorder{
		sink:  sink,
		scope: bus.NewScope(),
		log:   logger.Component("analytics"),
	}
	for _, name := range Recorded {
		r.scope.Subscribe(name, r.handle)
	}
	return r
}

// Stop removes every subscription made by Start.
func (r *Recorder) Stop() {
	r.scope.Close()
}

func (r *Recorder) handle(_ context.Context, evt events.Event) error {
	entry, err := Entry(evt)
	if err != nil {
		return err
	}
	if !r.sink.Log(entry) {
		r.log.Debug().Str("event", string(evt.Name)).Msg("Activity entry dropped, buffer full")
	}
	return nil
}

// Entry converts a bus event into an activity log entry.
func Entry(evt events.Event) (*model.LogEntry, error) {
	entry := &model.LogEntry{
		Timestamp: evt.Time,
		Level:     "info",
		Event:     string(evt.Name),
	}

	switch p := evt.Payload.(type) {
	case events.CategorySelectedPayload:
		entry.Message = "Category selected"
		entry.EntityID = p.CategoryID
		entry.ActionType = ActionSelection
	case events.CourseSelectedPayload:
		entry.Message = "Course selected"
		entry.EntityID = p.CourseID
		entry.ActionType = ActionSelection
	case events.ErrorOccurredPayload:
		entry.Level = "warn"
		entry.Message = "Content load failed"
		entry.EntityID = p.Resource
		entry.ActionType = ActionLoadError
		entry.Error = p.Message
		entry.WithField("kind", p.Kind)
	case events.CacheClearedPayload:
		entry.Message = "Cache cleared"
		entry.EntityID = p.Key
		entry.ActionType = ActionCacheClear
		entry.WithField("entries", p.Entries)
	default:
		return nil, fmt.Errorf("analytics: unexpected payload %T for %s", evt.Payload, evt.Name)
	}

	return entry, nil
}
