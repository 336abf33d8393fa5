// Package model provides domain models for the catalog service.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry is one activity log record. HTTP requests fill the request
// fields; bus events fill Event and EntityID. Anything else goes in Fields.
type LogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Level     string             `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`
	// ActionType groups entries: request, selection, load_error, cache_clear, cache_admin.
	ActionType string `bson:"action_type,omitempty" json:"action_type,omitempty"`

	RequestID  string `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string `bson:"method,omitempty" json:"method,omitempty"`
	Path       string `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string `bson:"error,omitempty" json:"error,omitempty"`

	// Event is the bus event name; EntityID the course, category, resource
	// or cache key it concerns.
	Event    string `bson:"event,omitempty" json:"event,omitempty"`
	EntityID string `bson:"entity_id,omitempty" json:"entity_id,omitempty"`

	Fields map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets one extra field, allocating Fields on first use.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.WithField(k, v)
	}
	return e
}

// LogQueryOptions filters activity log reads. Zero values match everything.
type LogQueryOptions struct {
	RequestID string
	Level     string
	Event     string
	Method    string
	Path      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

// EntityCount is how often one entity appeared for an event, e.g. how many
// times a course was selected.
type EntityCount struct {
	EntityID string    `json:"entity_id" example:"algo-101"`
	Count    int64     `json:"count" example:"42"`
	LastSeen time.Time `json:"last_seen"`
}

// TopEntitiesOptions selects the ranking returned by TopEntities.
type TopEntitiesOptions struct {
	Event string
	Since *time.Time
	Limit int
}
