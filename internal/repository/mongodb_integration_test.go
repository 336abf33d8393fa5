//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	uri := getSharedContainerURI()
	dbName := sanitizeDBName(t.Name())

	db, err := NewMongoDB(uri, dbName)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("connection successful", func(t *testing.T) {
		assert.NotNil(t, db.Client)
		assert.NotNil(t, db.Database)
		assert.Equal(t, LogsCollection, db.Logs.Name())
	})

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("set logs TTL is repeatable", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))
		require.NoError(t, db.SetLogsTTL(ctx, 7*24*time.Hour))

		cursor, err := db.Logs.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var ttl interface{}
		for _, idx := range indexes {
			if idx["name"] == logsTTLIndexName {
				ttl = idx["expireAfterSeconds"]
			}
		}
		require.NotNil(t, ttl)
		assert.EqualValues(t, 7*24*60*60, ttl)
	})

	t.Run("set logs TTL rejects sub-second values", func(t *testing.T) {
		assert.Error(t, db.SetLogsTTL(ctx, 0))
		assert.Error(t, db.SetLogsTTL(ctx, 500*time.Millisecond))
	})

	t.Run("query indexes exist", func(t *testing.T) {
		specs, err := db.Logs.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)

		var names []string
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
		assert.Contains(t, names, "request_id_1")
		assert.Contains(t, names, "event_1_timestamp_-1")
	})

	t.Run("invalid uri fails", func(t *testing.T) {
		cfg := DefaultMongoConfig()
		cfg.ConnectTimeout = time.Second
		cfg.ServerSelectionTimeout = time.Second
		_, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", "unreachable", cfg)
		assert.Error(t, err)
	})
}
