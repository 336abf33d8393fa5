// Package events provides the in-process notification bus used to coordinate
// loading indicators, error banners and selection changes between components.
package events

import "time"

// Name identifies an event type.
type Name string

// Event names published on the bus.
const (
	LoadingStart     Name = "LOADING_START"
	LoadingEnd       Name = "LOADING_END"
	ErrorOccurred    Name = "ERROR_OCCURRED"
	DataLoaded       Name = "DATA_LOADED"
	CategorySelected Name = "CATEGORY_SELECTED"
	CourseSelected   Name = "COURSE_SELECTED"
	CacheCleared     Name = "CACHE_CLEARED"
)

// All lists every known event name in a stable order.
var All = []Name{
	LoadingStart,
	LoadingEnd,
	ErrorOccurred,
	DataLoaded,
	CategorySelected,
	CourseSelected,
	CacheCleared,
}

// Known reports whether n is a known event name.
func Known(n Name) bool {
	for _, k := range All {
		if k == n {
			return true
		}
	}
	return false
}

// Event is a single publication.
type Event struct {
	Name    Name        `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	Time    time.Time   `json:"time"`
}

// LoadingStartPayload accompanies LOADING_START.
type LoadingStartPayload struct {
	Resource string `json:"resource"`
}

// LoadingEndPayload accompanies LOADING_END.
type LoadingEndPayload struct {
	Resource string `json:"resource"`
	Success  bool   `json:"success"`
}

// ErrorOccurredPayload accompanies ERROR_OCCURRED. Message is user facing.
type ErrorOccurredPayload struct {
	Resource string `json:"resource"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// DataLoadedPayload accompanies DATA_LOADED.
type DataLoadedPayload struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	Fallback bool        `json:"fallback"`
}

// CategorySelectedPayload accompanies CATEGORY_SELECTED.
type CategorySelectedPayload struct {
	CategoryID string `json:"category_id"`
}

// CourseSelectedPayload accompanies COURSE_SELECTED.
type CourseSelectedPayload struct {
	CourseID string `json:"course_id"`
}

// CacheClearedPayload accompanies CACHE_CLEARED.
type CacheClearedPayload struct {
	Key     string `json:"key,omitempty"`
	Entries int    `json:"entries"`
}
