//go:build integration

package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/config"
)

func TestInitializeApp_Integration(t *testing.T) {
	t.Parallel()

	t.Run("with MongoDB enabled", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig("http://127.0.0.1:1")
		cfg.Database = databaseConfig(t)

		a, err := InitializeApp(cfg)
		require.NoError(t, err)
		defer a.Close()

		require.NotNil(t, a.database)
		assert.NotNil(t, a.routing.AsyncLogger)

		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
		assert.Contains(t, w.Body.String(), `"mongodb_logs_circuit":"closed"`)

		w = httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/activity", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("with unreachable MongoDB", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig("http://127.0.0.1:1")
		cfg.Database = config.DatabaseConfig{
			URI:          "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
			DatabaseName: "unreachable",
			LogsTTL:      time.Hour,
			Enabled:      true,
		}

		a, err := InitializeApp(cfg)
		require.NoError(t, err)
		defer a.Close()

		assert.Nil(t, a.database)

		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/activity", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
