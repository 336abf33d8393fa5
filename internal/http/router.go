package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/middleware"
	"github.com/guttosm/catalog-service/internal/service"
)

// streamPath is the server-sent events route. It is long-lived, so it runs
// without the request deadline and without gzip buffering.
const streamPath = "/api/events/stream"

// OpsPaths are the orchestration endpoints exempt from rate limiting.
var OpsPaths = []string{"/healthz", "/readyz", "/metrics"}

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	RequestTimeout time.Duration
	// OperatorKeys guard the cache and activity routes. Empty leaves them open.
	OperatorKeys []string

	// Limiter is used when set; otherwise one is created from RateLimit.
	Limiter *middleware.ShardedRateLimiter
	// LogSink receives request and audit entries. Optional.
	LogSink middleware.LogSink

	Content service.ContentService
	// Logging backs GET /api/activity. The route is not registered without it.
	Logging service.LoggingService
	Events  *EventsHandler
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter creates and configures the Gin router for the catalog service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Configure global middleware
	configureGlobalMiddleware(router, &cfg)

	// Register infrastructure routes (health, metrics, swagger)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	registerCatalogRoutes(api, &cfg)
	registerEventRoutes(api, &cfg)
	registerOperatorRoutes(api, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Locale(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(streamPath),
		middleware.RequestLogger(cfg.LogSink, OpsPaths...),
		middleware.ErrorHandler(),
	)

	// Global rate limiting
	limiter := cfg.Limiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, middleware.WithExemptPaths(OpsPaths...))
	}
	if limiter != nil {
		router.Use(limiter.RateLimit())
	}

	if cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(middleware.TimeoutConfig{
			Timeout:   cfg.RequestTimeout,
			SkipPaths: []string{streamPath},
		}))
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func registerCatalogRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Content == nil {
		return
	}
	NewCatalogRoutes(NewHandler(cfg.Content)).RegisterRoutes(api, cfg)
}

func registerEventRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Events == nil {
		return
	}
	NewEventRoutes(cfg.Events).RegisterRoutes(api, cfg)
}

func registerOperatorRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Content == nil {
		return
	}
	routes := NewOperatorRoutes(NewCacheHandler(cfg.Content, cfg.LogSink))
	if cfg.Logging != nil {
		routes.activity = NewActivityHandler(cfg.Logging)
	}
	routes.RegisterRoutes(api, cfg)
}
