// Package main is the entry point for the catalog-service application.
//
// @title           Catalog Service API
// @version         1.0.0
// @description     Data access layer for the course catalog: categories, courses, course content, homepage and story.
//
//	Resources are cached, loaded from the remote content source behind a circuit breaker,
//	and served from a bundled fallback catalog when the source is unavailable.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/catalog-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Operator API key. Required for cache and activity endpoints when operator keys are configured.
//
// @tag.name        Catalog
// @tag.description Categories, courses, course content and course cards
//
// @tag.name        Content
// @tag.description Homepage configuration and story content
//
// @tag.name        Events
// @tag.description Notification bus publishing and server-sent event stream
//
// @tag.name        Cache
// @tag.description Content cache administration
//
// @tag.name        Activity
// @tag.description Activity log queries
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/catalog-service/docs" // swagger docs

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
