package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/fetch"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/middleware"
	"github.com/guttosm/catalog-service/internal/service"
)

// statusClientClosedRequest is logged when the caller went away before the
// content service answered. Nothing reaches the client.
const statusClientClosedRequest = 499

// envelopePool recycles response envelopes; reset clears a value before it
// is handed out again.
type envelopePool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

func newEnvelopePool[T any](reset func(*T)) *envelopePool[T] {
	return &envelopePool[T]{
		pool:  sync.Pool{New: func() interface{} { return new(T) }},
		reset: reset,
	}
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	p.reset(v)
	p.pool.Put(v)
}

var (
	successEnvelopes = newEnvelopePool(func(r *dto.SuccessResponse) { *r = dto.SuccessResponse{} })
	errorEnvelopes   = newEnvelopePool(func(r *dto.ErrorResponse) { *r = dto.ErrorResponse{} })
)

// Validator interface for types that can validate themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into T and validates it if it
// implements Validator.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return validate(&req)
}

// BuildQueryAndValidate binds the query string into T and validates it if it
// implements Validator.
func BuildQueryAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindQuery(&req); err != nil {
		return nil, err
	}
	return validate(&req)
}

func validate[T any](req *T) (*T, error) {
	if validator, ok := any(req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// ResponseBuilder writes the standard success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.SuccessWithMeta(statusCode, data, nil)
}

// SuccessWithMeta sends a successful response carrying metadata such as
// result counts.
func (b *ResponseBuilder) SuccessWithMeta(statusCode int, data interface{}, meta map[string]interface{}) {
	resp := successEnvelopes.get()
	resp.Data = data
	resp.Meta = meta
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serializes synchronously, so the envelope can go back afterwards
	b.c.JSON(statusCode, resp)
	successEnvelopes.put(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessAccepted sends a 202 Accepted response with the given data.
func (b *ResponseBuilder) SuccessAccepted(data interface{}) {
	b.Success(http.StatusAccepted, data)
}

// Error sends an error response with the given status code and message key.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.ErrorWithMessage(statusCode, message, err)
}

// ErrorWithMessage sends an error response with an already translated message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	resp := errorEnvelopes.get()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		resp.Details = map[string]string{validationErr.Field: validationErr.Message}
	}

	// recorded for the request logger; ErrorHandler skips written responses
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	errorEnvelopes.put(resp)
}

// ServiceError maps a content service error onto the HTTP error taxonomy:
// unknown entities are 404, source timeouts 504, other source failures 502.
// notFoundKey selects the translated message for the 404 case.
func (b *ResponseBuilder) ServiceError(err error, notFoundKey string) {
	status, key := classifyServiceError(err)
	if status == statusClientClosedRequest {
		_ = b.c.Error(err)
		b.c.AbortWithStatus(status)
		return
	}
	if status == http.StatusNotFound {
		key = notFoundKey
	}
	b.Error(status, key, err)
}

func classifyServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, i18n.ErrKeyNotFound
	case errors.Is(err, fetch.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, ""
	case service.IsTransportError(err):
		return http.StatusBadGateway, i18n.ErrKeyUpstream
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}
