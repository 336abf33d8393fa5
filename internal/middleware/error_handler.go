package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/logger"
)

// ErrorHandler logs the last error a handler attached with c.Error. Errors
// behind a client error response are logged at warn level. When the handler
// wrote nothing, a 500 envelope is sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()

		log := logger.Ctx(c.Request.Context(), logger.Logger())
		evt := log.Error()
		if c.Writer.Written() && c.Writer.Status() < http.StatusInternalServerError {
			evt = log.WithLevel(zerolog.WarnLevel)
		}
		evt.Err(err.Err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
		c.JSON(http.StatusInternalServerError,
			dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c)))
	}
}
