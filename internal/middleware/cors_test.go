//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	origins := []string{"http://localhost:3000", "https://catalog.example.com"}

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedStatus int
		wantAllowed    string
	}{
		{
			name:           "preflight from allowed origin",
			method:         http.MethodOptions,
			origin:         "http://localhost:3000",
			expectedStatus: http.StatusNoContent,
			wantAllowed:    "http://localhost:3000",
		},
		{
			name:           "GET from allowed origin",
			method:         http.MethodGet,
			origin:         "https://catalog.example.com",
			expectedStatus: http.StatusOK,
			wantAllowed:    "https://catalog.example.com",
		},
		{
			name:           "GET from unknown origin is refused",
			method:         http.MethodGet,
			origin:         "https://evil.example.com",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "same-origin request without Origin header",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()

			router.Use(CORS(origins))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantAllowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_EmptyOriginsFallBackToLocal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, origins := range [][]string{nil, {}, {"", "  "}} {
		router := gin.New()
		assert.NotPanics(t, func() { router.Use(CORS(origins)) })
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", LocalOrigins[0])
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, LocalOrigins[0], w.Header().Get("Access-Control-Allow-Origin"))
	}
}
