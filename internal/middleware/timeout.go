package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
)

// TimeoutConfig configures Timeout.
type TimeoutConfig struct {
	// Timeout bounds request handling. Zero or negative disables the deadline.
	Timeout time.Duration
	// SkipPaths are route templates left without a deadline, such as event streams.
	SkipPaths []string
}

// Timeout puts a deadline on the request context. Handlers hand that context
// to the content service, so an expired deadline cancels the upstream fetch.
// A handler that gives up without writing gets a 504 written for it.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if cfg.Timeout <= 0 || skip[c.FullPath()] {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
	}
}
