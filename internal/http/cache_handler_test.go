//go:build !integration

package http

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/middleware"
	"github.com/guttosm/catalog-service/internal/mocks"
	"github.com/guttosm/catalog-service/internal/service/cache"
)

type auditSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *auditSink) Log(entry *model.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return true
}

func (s *auditSink) all() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}

func setupCacheRouter(content *mocks.MockContentService, sink middleware.LogSink) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	NewOperatorRoutes(NewCacheHandler(content, sink)).RegisterRoutes(router.Group("/api"), &RouterConfig{})
	return router
}

func TestCacheHandler_Stats(t *testing.T) {
	content := mocks.NewMockContentService(t)
	content.On("CacheStats").Return(cache.Stats{
		Size:    2,
		MaxSize: 100,
		Keys:    []string{"categories", "courses"},
		Hits:    7,
		Misses:  2,
	})

	w := serve(setupCacheRouter(content, nil), http.MethodGet, "/api/cache/stats")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeSuccess(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 2, data["size"])
	assert.EqualValues(t, 100, data["max_size"])
	assert.EqualValues(t, 7, data["hits"])
	assert.ElementsMatch(t, []interface{}{"categories", "courses"}, data["keys"])
}

func TestCacheHandler_Clear(t *testing.T) {
	content := mocks.NewMockContentService(t)
	content.On("ClearCache", mock.Anything).Return(3)
	sink := &auditSink{}

	w := serve(setupCacheRouter(content, sink), http.MethodDelete, "/api/cache")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeSuccess(t, w).Data.(map[string]interface{})
	assert.EqualValues(t, 3, data["removed"])
	assert.Equal(t, "Cache cleared", data["message"])

	entries := sink.all()
	require.Len(t, entries, 1)
	assert.Equal(t, actionCacheAdmin, entries[0].ActionType)
	assert.Equal(t, 3, entries[0].Fields["entries"])
	assert.NotEmpty(t, entries[0].RequestID)
}

func TestCacheHandler_Invalidate(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		removed        bool
		expectedStatus int
		expectedAudits int
	}{
		{
			name:           "cached key",
			key:            "courses",
			removed:        true,
			expectedStatus: http.StatusOK,
			expectedAudits: 1,
		},
		{
			name:           "key with colon",
			key:            "course-content:algo-101",
			removed:        true,
			expectedStatus: http.StatusOK,
			expectedAudits: 1,
		},
		{
			name:           "key not cached",
			key:            "story",
			removed:        false,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := mocks.NewMockContentService(t)
			content.On("InvalidateKey", mock.Anything, tt.key).Return(tt.removed)
			sink := &auditSink{}

			w := serve(setupCacheRouter(content, sink), http.MethodDelete, "/api/cache/"+tt.key)

			require.Equal(t, tt.expectedStatus, w.Code)
			assert.Len(t, sink.all(), tt.expectedAudits)
			if tt.expectedStatus == http.StatusNotFound {
				assert.Equal(t, "Cache key not found", decodeError(t, w).Message)
				return
			}
			assert.Equal(t, tt.key, decodeSuccess(t, w).Data.(map[string]interface{})["key"])
		})
	}
}
