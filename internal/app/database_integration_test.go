//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

func databaseConfig(t *testing.T) config.DatabaseConfig {
	return config.DatabaseConfig{
		URI:                            getSharedContainerURI(),
		DatabaseName:                   sanitizeDBNameForApp(t.Name()),
		LogsTTL:                        30 * 24 * time.Hour,
		Enabled:                        true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("initialize with enabled database", func(t *testing.T) {
		t.Parallel()

		components := InitializeDatabase(databaseConfig(t))
		require.NotNil(t, components)
		defer func() { _ = components.Close(ctx) }()

		assert.NotNil(t, components.DB)
		assert.NotNil(t, components.LoggingService)
		assert.NoError(t, components.DB.HealthCheck(ctx))

		stats := components.LogsCircuitBreaker.GetStats()
		assert.Equal(t, "closed", stats.State)
		assert.True(t, stats.IsHealthy)
	})

	t.Run("initialize with disabled database", func(t *testing.T) {
		t.Parallel()

		cfg := databaseConfig(t)
		cfg.Enabled = false
		assert.Nil(t, InitializeDatabase(cfg))
	})

	t.Run("logging service round trip", func(t *testing.T) {
		t.Parallel()

		components := InitializeDatabase(databaseConfig(t))
		require.NotNil(t, components)
		defer func() { _ = components.Close(ctx) }()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      "info",
			Message:    "Course selected",
			RequestID:  "req-1",
			ActionType: "selection",
			Event:      "COURSE_SELECTED",
		}
		require.NoError(t, components.LoggingService.CreateLog(ctx, entry))

		count, err := components.LoggingService.CountLogs(ctx, model.LogQueryOptions{Event: "COURSE_SELECTED"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
