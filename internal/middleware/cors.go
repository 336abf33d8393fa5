package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// LocalOrigins are allowed when no origin is configured.
var LocalOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// CORS returns the Cross-Origin Resource Sharing middleware for the browser UI.
// Only the listed origins are allowed; blank entries are ignored and an empty
// list allows LocalOrigins.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 {
		allowed = LocalOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Cache-Control", APIKeyHeader, RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Language", "X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
