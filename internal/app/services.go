// Package app provides service initialization.
package app

import (
	"fmt"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/events"
	"github.com/guttosm/catalog-service/internal/fallback"
	"github.com/guttosm/catalog-service/internal/fetch"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/service/cache"
)

// sourceBreakerName labels the content source circuit in logs, metrics and readiness.
const sourceBreakerName = "content_source"

// ContentComponents holds the data access layer and its collaborators.
type ContentComponents struct {
	Service              *service.CatalogService
	Bus                  *events.Bus
	SourceCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeContent builds the notification bus, the content cache, the
// circuit-protected source gateway and the catalog service on top of them.
func InitializeContent(cfg config.Config) (*ContentComponents, error) {
	store, err := cache.New[any](cache.Config{
		MaxSize: cfg.Cache.Size,
		TTL:     cfg.Cache.TTL,
		Policy:  cfg.Cache.Eviction,
	})
	if err != nil {
		return nil, fmt.Errorf("content cache: %w", err)
	}

	dataset, err := fallback.Default()
	if err != nil {
		return nil, fmt.Errorf("fallback dataset: %w", err)
	}

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.Source.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.Source.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.Source.CircuitBreakerTimeout,
		Name:             sourceBreakerName,
		IsFailure:        fetch.IsSourceFailure,
		OnStateChange:    recordBreakerState,
	})

	var gatewayOpts []fetch.Option
	if cfg.Source.Envelope != "" {
		gatewayOpts = append(gatewayOpts, fetch.WithEnvelope(cfg.Source.Envelope))
	}
	gateway := fetch.NewBreakerGateway(fetch.NewHTTPGateway(gatewayOpts...), cb)

	bus := events.NewBus()

	catalog := service.NewCatalogService(gateway, store, bus, dataset,
		service.WithBaseURL(cfg.Source.BaseURL),
		service.WithPaths(service.Paths{
			Categories:    cfg.Source.CategoriesPath,
			Courses:       cfg.Source.CoursesPath,
			Homepage:      cfg.Source.HomepagePath,
			Story:         cfg.Source.StoryPath,
			CourseContent: cfg.Source.CourseContentPath,
		}),
		service.WithTimeout(cfg.Source.Timeout),
		service.WithRetries(cfg.Source.Retries, 0),
	)

	return &ContentComponents{
		Service:              catalog,
		Bus:                  bus,
		SourceCircuitBreaker: cb,
	}, nil
}

func recordBreakerState(name string, _, to circuitbreaker.State) {
	metrics.RecordBreakerState(name, int(to))
}
