package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/middleware"
	"github.com/guttosm/catalog-service/internal/service"
)

// actionCacheAdmin marks audit entries written for operator cache requests.
const actionCacheAdmin = "cache_admin"

// CacheHandler provides the operator endpoints of the content cache.
type CacheHandler struct {
	content service.ContentService
	audit   middleware.LogSink
}

// NewCacheHandler creates a CacheHandler. audit may be nil.
func NewCacheHandler(content service.ContentService, audit middleware.LogSink) *CacheHandler {
	return &CacheHandler{content: content, audit: audit}
}

// Stats handles GET /api/cache/stats.
//
// @Summary      Cache statistics
// @Description  Returns the cache size, capacity, cached keys and hit/miss/eviction counters.
// @Tags         Cache
// @Produce      json
// @Param        X-API-Key header string false "Operator API key (required when configured)"
// @Success      200 {object} dto.SuccessResponse "Cache statistics"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Router       /api/cache/stats [get]
func (h *CacheHandler) Stats(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.content.CacheStats())
}

// Clear handles DELETE /api/cache.
//
// @Summary      Clear the cache
// @Description  Drops every cached entry and publishes CACHE_CLEARED. The next read of each resource goes to the content source.
// @Tags         Cache
// @Produce      json
// @Param        X-API-Key header string false "Operator API key (required when configured)"
// @Success      200 {object} dto.SuccessResponse "Number of removed entries"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Router       /api/cache [delete]
func (h *CacheHandler) Clear(c *gin.Context) {
	removed := h.content.ClearCache(c.Request.Context())

	middleware.AuditLog(h.audit, c, actionCacheAdmin, "Content cache cleared", map[string]interface{}{
		"entries": removed,
	})

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyCacheCleared, i18n.GetLocale(c))
	NewResponseBuilder(c).SuccessOK(gin.H{"removed": removed, "message": message})
}

// Invalidate handles DELETE /api/cache/:key.
//
// @Summary      Invalidate one cache key
// @Description  Drops a single cached entry, for example "courses" or "course-content:algo-101".
// @Tags         Cache
// @Produce      json
// @Param        key path string true "Cache key"
// @Param        X-API-Key header string false "Operator API key (required when configured)"
// @Success      200 {object} dto.SuccessResponse "Key removed"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Key was not cached"
// @Router       /api/cache/{key} [delete]
func (h *CacheHandler) Invalidate(c *gin.Context) {
	key := c.Param("key")
	builder := NewResponseBuilder(c)

	if !h.content.InvalidateKey(c.Request.Context(), key) {
		builder.Error(http.StatusNotFound, i18n.ErrKeyCacheKeyNotFound, nil)
		return
	}

	middleware.AuditLog(h.audit, c, actionCacheAdmin, "Cache key invalidated", map[string]interface{}{
		"key": key,
	})

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyCacheCleared, i18n.GetLocale(c))
	builder.SuccessOK(gin.H{"key": key, "message": message})
}
