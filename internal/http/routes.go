package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

var (
	_ RouteGroup = (*CatalogRoutes)(nil)
	_ RouteGroup = (*EventRoutes)(nil)
	_ RouteGroup = (*OperatorRoutes)(nil)
)

// CatalogRoutes registers the public read routes.
type CatalogRoutes struct {
	handler *Handler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *Handler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterRoutes registers the catalog and content routes.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.GET("/categories", r.handler.GetCategories)
	rg.GET("/categories/:id", r.handler.GetCategory)

	// featured is registered before :id; gin prefers the static segment
	rg.GET("/courses", r.handler.ListCourses)
	rg.GET("/courses/featured", r.handler.GetFeaturedCourses)
	rg.GET("/courses/:id", r.handler.GetCourse)
	rg.GET("/courses/:id/content", r.handler.GetCourseContent)
	rg.GET("/courses/:id/card", r.handler.GetCourseCard)

	rg.GET("/homepage", r.handler.GetHomepage)
	rg.GET("/story", r.handler.GetStory)
}

// EventRoutes registers the notification bus routes.
type EventRoutes struct {
	handler *EventsHandler
}

// NewEventRoutes creates a new EventRoutes instance.
func NewEventRoutes(handler *EventsHandler) *EventRoutes {
	return &EventRoutes{handler: handler}
}

// RegisterRoutes registers publish and stream routes.
func (r *EventRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/events", r.handler.Publish)
	rg.GET("/events/stream", r.handler.Stream)
}

// OperatorRoutes registers cache administration and activity routes behind
// the operator API key.
type OperatorRoutes struct {
	cache    *CacheHandler
	activity *ActivityHandler
}

// NewOperatorRoutes creates a new OperatorRoutes instance.
func NewOperatorRoutes(cache *CacheHandler) *OperatorRoutes {
	return &OperatorRoutes{cache: cache}
}

// RegisterRoutes registers the operator routes.
func (r *OperatorRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	operator := rg.Group("", middleware.APIKeyAuth(cfg.OperatorKeys))

	operator.GET("/cache/stats", r.cache.Stats)
	operator.DELETE("/cache", r.cache.Clear)
	operator.DELETE("/cache/:key", r.cache.Invalidate)

	if r.activity != nil {
		operator.GET("/activity", r.activity.List)
		operator.GET("/activity/top", r.activity.Top)
	}
}
