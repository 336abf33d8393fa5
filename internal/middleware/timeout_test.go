//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func timeoutRouter(cfg TimeoutConfig, route string, h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Timeout(cfg))
	router.GET(route, h)
	return router
}

func TestTimeout_Deadline(t *testing.T) {
	tests := []struct {
		name         string
		cfg          TimeoutConfig
		route        string
		wantDeadline bool
	}{
		{name: "deadline set", cfg: TimeoutConfig{Timeout: time.Second}, route: "/api/courses", wantDeadline: true},
		{name: "disabled", cfg: TimeoutConfig{}, route: "/api/courses"},
		{name: "stream skipped", cfg: TimeoutConfig{Timeout: time.Second, SkipPaths: []string{"/api/events/stream"}}, route: "/api/events/stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hasDeadline bool
			router := timeoutRouter(tt.cfg, tt.route, func(c *gin.Context) {
				_, hasDeadline = c.Request.Context().Deadline()
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.route, nil))

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.wantDeadline, hasDeadline)
		})
	}
}

func TestTimeout_WritesGatewayTimeout(t *testing.T) {
	router := timeoutRouter(TimeoutConfig{Timeout: 20 * time.Millisecond}, "/api/courses/:id/content", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	req := httptest.NewRequest(http.MethodGet, "/api/courses/algo-101/content", nil)
	req.Header.Set("Accept-Language", "pt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"timeout"`)
	assert.Contains(t, w.Body.String(), "demorou demais")
	assert.Contains(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestTimeout_HandlerResponseWins(t *testing.T) {
	router := timeoutRouter(TimeoutConfig{Timeout: 20 * time.Millisecond}, "/api/courses", func(c *gin.Context) {
		<-c.Request.Context().Done()
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_unavailable"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), `"timeout"`)
}
