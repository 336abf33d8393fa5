// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"
	"time"
)

// CourseQuery holds the query string accepted by the course listing endpoint.
//
// @Description Course listing filters
type CourseQuery struct {
	// Category restricts results to one category id.
	Category string `form:"category" example:"algorithms"`
	// Q is a case-insensitive substring matched against title, description and tags.
	Q string `form:"q" example:"sort"`
	// Difficulty is an exact difficulty match.
	Difficulty string `form:"difficulty" example:"beginner" enums:"beginner,intermediate,advanced"`
	// Sort orders the results. Unknown keys keep the source order.
	Sort string `form:"sort" example:"rating" enums:"title,difficulty,duration,rating"`
	// Limit caps the number of results (0 means no limit).
	Limit int `form:"limit" example:"10" minimum:"0"`
} // @name CourseQuery

// PublishEventRequest is the body of the UI event endpoint.
//
// @Description UI selection event
// @Example {"event": "COURSE_SELECTED", "course_id": "algo-101"}
type PublishEventRequest struct {
	Event      string `json:"event" binding:"required" example:"COURSE_SELECTED" enums:"CATEGORY_SELECTED,COURSE_SELECTED"`
	CategoryID string `json:"category_id,omitempty" example:"algorithms"`
	CourseID   string `json:"course_id,omitempty" example:"algo-101"`
} // @name PublishEventRequest

// ActivityQuery holds the filters accepted by the activity log endpoint.
//
// @Description Activity log filters
type ActivityQuery struct {
	// Event restricts results to one bus event name.
	Event string `form:"event" example:"COURSE_SELECTED"`
	// Level is an exact log level match.
	Level string `form:"level" example:"info" enums:"info,warn,error"`
	// RequestID is an exact request id match.
	RequestID string `form:"request_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Path is a case-insensitive substring of the request path.
	Path string `form:"path" example:"/api/courses"`
	// Since is the inclusive lower time bound (RFC 3339).
	Since time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00" example:"2026-01-01T00:00:00Z"`
	// Until is the inclusive upper time bound (RFC 3339).
	Until time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00" example:"2026-01-02T00:00:00Z"`
	// Limit caps the page size; 0 uses the server default.
	Limit int `form:"limit" example:"50" minimum:"0"`
	// Skip is the number of entries to skip.
	Skip int `form:"skip" example:"0" minimum:"0"`
} // @name ActivityQuery

// ActivityTopQuery holds the filters of the top selections endpoint.
//
// @Description Top selections filters
type ActivityTopQuery struct {
	// Event is the selection event to rank; defaults to COURSE_SELECTED.
	Event string `form:"event" example:"COURSE_SELECTED" enums:"CATEGORY_SELECTED,COURSE_SELECTED"`
	// Since is the inclusive lower time bound (RFC 3339).
	Since time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00" example:"2026-01-01T00:00:00Z"`
	// Limit caps the number of entities; 0 uses the server default.
	Limit int `form:"limit" example:"10" minimum:"0"`
} // @name ActivityTopQuery

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidLimit is returned when limit is negative.
	ErrInvalidLimit = &ValidationError{
		Field:   "limit",
		Message: "must not be negative",
	}
	// ErrInvalidSkip is returned when skip is negative.
	ErrInvalidSkip = &ValidationError{
		Field:   "skip",
		Message: "must not be negative",
	}
	// ErrInvalidTimeRange is returned when since is after until.
	ErrInvalidTimeRange = &ValidationError{
		Field:   "since",
		Message: "must not be after until",
	}
	// ErrUnsupportedEvent is returned for events the UI may not publish.
	ErrUnsupportedEvent = &ValidationError{
		Field:   "event",
		Message: "must be CATEGORY_SELECTED or COURSE_SELECTED",
	}
	// ErrMissingCategoryID is returned when a category selection has no id.
	ErrMissingCategoryID = &ValidationError{
		Field:   "category_id",
		Message: "is required for CATEGORY_SELECTED",
	}
	// ErrMissingCourseID is returned when a course selection has no id.
	ErrMissingCourseID = &ValidationError{
		Field:   "course_id",
		Message: "is required for COURSE_SELECTED",
	}
)

// Validate performs custom validation on the query.
func (q *CourseQuery) Validate() error {
	if q.Limit < 0 {
		return ErrInvalidLimit
	}
	q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	return nil
}

// Validate performs custom validation on the request.
func (r *PublishEventRequest) Validate() error {
	switch strings.ToUpper(strings.TrimSpace(r.Event)) {
	case "CATEGORY_SELECTED":
		r.Event = "CATEGORY_SELECTED"
		if strings.TrimSpace(r.CategoryID) == "" {
			return ErrMissingCategoryID
		}
	case "COURSE_SELECTED":
		r.Event = "COURSE_SELECTED"
		if strings.TrimSpace(r.CourseID) == "" {
			return ErrMissingCourseID
		}
	default:
		return ErrUnsupportedEvent
	}
	return nil
}

// Validate performs custom validation on the query.
func (q *ActivityQuery) Validate() error {
	if q.Limit < 0 {
		return ErrInvalidLimit
	}
	if q.Skip < 0 {
		return ErrInvalidSkip
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Since.After(q.Until) {
		return ErrInvalidTimeRange
	}
	q.Event = strings.ToUpper(strings.TrimSpace(q.Event))
	q.Level = strings.ToLower(strings.TrimSpace(q.Level))
	return nil
}

// Validate defaults and checks the query.
func (q *ActivityTopQuery) Validate() error {
	if q.Limit < 0 {
		return ErrInvalidLimit
	}
	switch event := strings.ToUpper(strings.TrimSpace(q.Event)); event {
	case "":
		q.Event = "COURSE_SELECTED"
	case "CATEGORY_SELECTED", "COURSE_SELECTED":
		q.Event = event
	default:
		return ErrUnsupportedEvent
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
