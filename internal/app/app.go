// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/http"
)

const (
	warmupTimeout = 30 * time.Second
	closeTimeout  = 5 * time.Second
)

// App is the wired catalog service.
type App struct {
	Router *gin.Engine

	cfg      config.Config
	content  *ContentComponents
	database *DatabaseComponents
	routing  *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	// Initialize the data access layer (cache, source gateway, bus, fallback)
	content, err := InitializeContent(cfg)
	if err != nil {
		return nil, err
	}

	// Initialize the activity log store; nil when disabled or unreachable
	database := InitializeDatabase(cfg.Database)

	// Initialize router components (handlers, workers and configuration)
	routing := InitializeRouter(content, database, cfg)

	return &App{
		Router:   http.NewRouter(routing.HealthHandler, routing.Config),
		cfg:      cfg,
		content:  content,
		database: database,
		routing:  routing,
	}, nil
}

// Content returns the data access components.
func (a *App) Content() *ContentComponents {
	return a.content
}

// Warmup preloads the collection resources. Failures are logged; requests
// will retry the source or use the fallback dataset.
func (a *App) Warmup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	if err := a.content.Service.Warmup(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache warmup incomplete")
	}
}

// Run serves HTTP until a shutdown signal arrives, then releases every
// component.
func (a *App) Run() error {
	server := NewServer(a.Router, a.cfg.Server.Port, WithShutdownTimeout(a.cfg.Server.ShutdownTimeout))
	server.OnShutdown(a.routing.EventsHandler.Close)

	if a.cfg.Source.Warmup {
		go a.Warmup(context.Background())
	}

	err := server.Run()
	a.Close()
	return err
}

// Close stops background workers and disconnects from the database.
func (a *App) Close() {
	a.routing.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.database.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to close MongoDB connection")
	}
}
