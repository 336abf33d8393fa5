package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/logger"
)

// ActionTypeRequest marks activity log entries written for HTTP requests.
const ActionTypeRequest = "request"

// RequestLogger returns a middleware that writes one structured access log
// line per request. When sink is non-nil the request is also queued for the
// activity log, except for skipPaths (probes and scrapes), which only reach
// the access log.
func RequestLogger(sink LogSink, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			ActionType: ActionTypeRequest,
		}
		entry.Level = getLogLevel(entry.StatusCode)
		if route := c.FullPath(); route != "" {
			entry.WithField("route", route)
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		accessLog(entry)

		if sink == nil {
			return
		}
		if _, ok := skip[entry.Path]; ok {
			return
		}
		sink.Log(entry)
	}
}

func accessLog(entry *model.LogEntry) {
	log := logger.Logger()

	var evt *zerolog.Event
	switch entry.Level {
	case "error":
		evt = log.Error()
	case "warn":
		evt = log.Warn()
	default:
		evt = log.Info()
	}

	evt.Str("request_id", entry.RequestID).
		Str("method", entry.Method).
		Str("path", entry.Path).
		Int("status_code", entry.StatusCode).
		Int64("duration_ms", entry.Duration).
		Str("ip", entry.IP).
		Str("user_agent", entry.UserAgent)
	if entry.Error != "" {
		evt.Str("error", entry.Error)
	}
	evt.Msg(entry.Message)
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
