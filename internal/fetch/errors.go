package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed fetch.
type Kind string

// Failure kinds.
const (
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"
	KindHTTPStatus Kind = "http-status"
	KindParse      Kind = "parse"
)

// Sentinels usable with errors.Is against a *Failure.
var (
	ErrTimeout    = errors.New("fetch: timeout")
	ErrNetwork    = errors.New("fetch: network error")
	ErrHTTPStatus = errors.New("fetch: unexpected http status")
	ErrParse      = errors.New("fetch: invalid response body")
)

// Failure describes why a fetch did not produce usable data.
type Failure struct {
	Kind    Kind
	URL     string
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: http status %d", f.URL, f.Status)
	default:
		if f.Message != "" {
			return fmt.Sprintf("fetch %s: %s: %s", f.URL, f.Kind, f.Message)
		}
		return fmt.Sprintf("fetch %s: %s", f.URL, f.Kind)
	}
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the kind sentinels.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return f.Kind == KindTimeout
	case ErrNetwork:
		return f.Kind == KindNetwork
	case ErrHTTPStatus:
		return f.Kind == KindHTTPStatus
	case ErrParse:
		return f.Kind == KindParse
	}
	return false
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or "" when err is not a *Failure.
func KindOf(err error) Kind {
	if f, ok := AsFailure(err); ok {
		return f.Kind
	}
	return ""
}

// IsStatus reports whether err is an http-status failure with the given code.
func IsStatus(err error, code int) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == KindHTTPStatus && f.Status == code
}

// IsSourceFailure reports whether err indicates the source itself is
// unhealthy. Client errors (4xx) and malformed payloads do not count.
func IsSourceFailure(err error) bool {
	f, ok := AsFailure(err)
	if !ok {
		return err != nil
	}
	switch f.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindHTTPStatus:
		return f.Status >= http.StatusInternalServerError || f.Status == http.StatusTooManyRequests
	default:
		return false
	}
}
