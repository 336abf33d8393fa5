package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that compresses HTTP responses using gzip.
// Paths in excluded are never compressed; streaming responses must be listed
// there because gzip buffers until the handler returns.
func Compression(excluded ...string) gin.HandlerFunc {
	if len(excluded) == 0 {
		return gzip.Gzip(gzip.DefaultCompression)
	}
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excluded))
}
