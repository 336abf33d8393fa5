package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/i18n"
)

// LocaleKey is the gin context key holding the negotiated locale.
const LocaleKey = "locale"

// Locale negotiates the response language from Accept-Language and stores it
// on both the gin context and the request context, so load-failure messages
// published by the content service use the caller's language.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		c.Set(LocaleKey, locale)
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}
