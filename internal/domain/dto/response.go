package dto

import (
	"maps"
	"net/http"
	"time"
)

// Machine readable error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUpstream means the content source or the activity store could
	// not serve the request.
	ErrCodeUpstream     = "upstream_unavailable"
	ErrCodeUnauthorized = "unauthorized"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusBadGateway:         ErrCodeUpstream,
	http.StatusServiceUnavailable: ErrCodeUpstream,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
}

// SuccessResponse is the envelope of every successful API response.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data interface{} `json:"data" swaggertype:"object"`
	// Meta carries response metadata such as result counts
	Meta      map[string]interface{} `json:"meta,omitempty" swaggertype:"object"`
	RequestID string                 `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time              `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope of every failed API response.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"not_found"`
	Message string `json:"message,omitempty" example:"Course not found"`
	// Details maps offending fields to what is wrong with them
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now()}
}

// WithRequestID returns a copy of e carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail returns a copy of e with one more detail. The receiver's
// details map is never modified.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	maps.Copy(details, e.Details)
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus maps an HTTP status to its error code. Unlisted statuses
// are internal errors.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
