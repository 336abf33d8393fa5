package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service"
)

// ActivityHandler serves the activity log: request logs, selections, load
// failures and cache clears.
type ActivityHandler struct {
	logging service.LoggingService
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(logging service.LoggingService) *ActivityHandler {
	return &ActivityHandler{logging: logging}
}

// List handles GET /api/activity.
//
// @Summary      Query the activity log
// @Description  Returns activity log entries, newest first, with the total number of matches.
// @Tags         Activity
// @Produce      json
// @Param        event      query string false "Bus event name" Enums(CATEGORY_SELECTED, COURSE_SELECTED, ERROR_OCCURRED, CACHE_CLEARED)
// @Param        level      query string false "Log level" Enums(info, warn, error)
// @Param        request_id query string false "Request id"
// @Param        path       query string false "Request path substring"
// @Param        since      query string false "Lower time bound (RFC 3339)"
// @Param        until      query string false "Upper time bound (RFC 3339)"
// @Param        limit      query int    false "Page size (default 50, max 500)"
// @Param        skip       query int    false "Entries to skip"
// @Param        X-API-Key  header string false "Operator API key (required when configured)"
// @Success      200 {object} dto.SuccessResponse "Activity entries"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid query"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Activity store unavailable"
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BuildQueryAndValidate[dto.ActivityQuery](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	opts := model.LogQueryOptions{
		RequestID: query.RequestID,
		Level:     query.Level,
		Event:     query.Event,
		Path:      query.Path,
		Limit:     query.Limit,
		Skip:      query.Skip,
	}
	if !query.Since.IsZero() {
		opts.StartTime = &query.Since
	}
	if !query.Until.IsZero() {
		opts.EndTime = &query.Until
	}

	var (
		entries []model.LogEntry
		total   int64
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var qErr error
		entries, qErr = h.logging.QueryLogs(ctx, opts)
		return qErr
	})
	g.Go(func() error {
		var cErr error
		total, cErr = h.logging.CountLogs(ctx, opts)
		return cErr
	})
	if err := g.Wait(); err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyActivityUnavailable, err)
		return
	}

	builder.SuccessWithMeta(http.StatusOK, entries, map[string]interface{}{
		"count": len(entries),
		"total": total,
		"skip":  query.Skip,
	})
}

// Top handles GET /api/activity/top.
//
// @Summary      Most selected entities
// @Description  Ranks the courses or categories users selected most often.
// @Tags         Activity
// @Produce      json
// @Param        event     query string false "Selection event (default COURSE_SELECTED)" Enums(CATEGORY_SELECTED, COURSE_SELECTED)
// @Param        since     query string false "Lower time bound (RFC 3339)"
// @Param        limit     query int    false "Number of entities (default 10, max 100)"
// @Param        X-API-Key header string false "Operator API key (required when configured)"
// @Success      200 {object} dto.SuccessResponse "Ranked entities"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid query"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Activity store unavailable"
// @Router       /api/activity/top [get]
func (h *ActivityHandler) Top(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BuildQueryAndValidate[dto.ActivityTopQuery](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	opts := model.TopEntitiesOptions{Event: query.Event, Limit: query.Limit}
	if !query.Since.IsZero() {
		opts.Since = &query.Since
	}

	ranked, err := h.logging.TopEntities(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyActivityUnavailable, err)
		return
	}
	builder.SuccessWithMeta(http.StatusOK, ranked, map[string]interface{}{
		"event": query.Event,
		"count": len(ranked),
	})
}
