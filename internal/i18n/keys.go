package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid operator credentials.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyNotFound indicates a route or resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyCourseNotFound indicates an unknown course id.
	ErrKeyCourseNotFound = "error.course_not_found"
	// ErrKeyCategoryNotFound indicates an unknown category id.
	ErrKeyCategoryNotFound = "error.category_not_found"
	// ErrKeyCacheKeyNotFound indicates an unknown cache key.
	ErrKeyCacheKeyNotFound = "error.cache_key_not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyUpstream indicates the content source failed.
	ErrKeyUpstream = "error.upstream_unavailable"
	// ErrKeyUnsupportedEvent indicates an event the UI may not publish.
	ErrKeyUnsupportedEvent = "error.unsupported_event"
	// ErrKeyActivityUnavailable indicates the activity log store failed.
	ErrKeyActivityUnavailable = "error.activity_unavailable"
	// ErrKeyUnknownVariant indicates an unknown card variant.
	ErrKeyUnknownVariant = "error.unknown_variant"
)

// Load failure keys, used for ERROR_OCCURRED notifications.
const (
	// LoadKeyTimeout is shown when the content source did not answer in time.
	LoadKeyTimeout = "load.timeout"
	// LoadKeyNetwork is shown when the content source could not be reached.
	LoadKeyNetwork = "load.network"
	// LoadKeyFailed is shown for every other load failure of a resource
	// that is answered from the fallback dataset.
	LoadKeyFailed = "load.failed"
	// LoadKeyUnavailable is shown for every other load failure of a resource
	// without fallback data, such as course content.
	LoadKeyUnavailable = "load.unavailable"
)

// Success message translation keys.
const (
	// SuccessKeyCacheCleared indicates the content cache was emptied.
	SuccessKeyCacheCleared = "success.cache_cleared"
	// SuccessKeyEventPublished indicates a UI event was accepted.
	SuccessKeyEventPublished = "success.event_published"
)
