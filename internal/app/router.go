// Package app provides router configuration.
package app

import (
	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/analytics"
	"github.com/guttosm/catalog-service/internal/http"
	"github.com/guttosm/catalog-service/internal/middleware"
)

// RouterComponents holds router-related components and the background
// workers that must be stopped on shutdown.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	EventsHandler *http.EventsHandler
	Limiter       *middleware.ShardedRateLimiter
	AsyncLogger   *middleware.AsyncLogger
	Recorder      *analytics.Recorder
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// dbComponents may be nil, in which case nothing is written to the activity
// log and GET /api/activity is not registered.
func InitializeRouter(content *ContentComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker(sourceBreakerName, content.SourceCircuitBreaker)

	eventsHandler := http.NewEventsHandler(content.Bus,
		http.WithStreamBuffer(cfg.Server.StreamBuffer),
		http.WithHeartbeat(cfg.Server.StreamHeartbeat),
	)

	var limiter *middleware.ShardedRateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow,
			middleware.WithExemptPaths(http.OpsPaths...))
	}

	components := &RouterComponents{
		HealthHandler: healthHandler,
		EventsHandler: eventsHandler,
		Limiter:       limiter,
		Config: http.RouterConfig{
			RateLimit:      cfg.Server.RateLimit,
			RateWindow:     cfg.Server.RateWindow,
			CORSOrigins:    cfg.Server.CORSOrigins,
			SwaggerUser:    cfg.Server.SwaggerUser,
			SwaggerPass:    cfg.Server.SwaggerPass,
			RequestTimeout: cfg.Server.RequestTimeout,
			OperatorKeys:   cfg.Server.OperatorKeys,
			Limiter:        limiter,
			Content:        content.Service,
			Events:         eventsHandler,
		},
	}

	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", http.CheckerFunc(dbComponents.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker(logsBreakerName, dbComponents.LogsCircuitBreaker)

		asyncLogger := middleware.NewAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
		components.AsyncLogger = asyncLogger
		components.Recorder = analytics.Start(content.Bus, asyncLogger)
		components.Config.LogSink = asyncLogger
		components.Config.Logging = dbComponents.LoggingService
	}

	return components
}

// Stop stops the background workers in dependency order: the recorder first so
// no new entries arrive, then the async logger so queued entries are written.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	r.EventsHandler.Close()
	if r.Recorder != nil {
		r.Recorder.Stop()
	}
	r.AsyncLogger.Stop()
	if r.Limiter != nil {
		r.Limiter.Stop()
	}
}
