package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// AuditLog records an operator action, such as clearing the content cache.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed operator action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}
}
