// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsCollection is the collection holding activity log entries.
const LogsCollection = "activity_logs"

const (
	logsTTLIndexName = "timestamp_ttl"

	// server error code for an index that exists with other options
	codeIndexOptionsConflict = 85

	healthCheckTimeout = 2 * time.Second
)

// logsIndexes back the activity queries: lookups by request id and the
// newest-first event scans used by filtering and top selections.
var logsIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "request_id", Value: 1}}},
	{Keys: bson.D{{Key: "event", Value: 1}, {Key: "timestamp", Value: -1}}},
}

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	// SocketTimeout bounds a single read or write on a connection.
	SocketTimeout time.Duration
	// EnableCompression negotiates zstd, snappy or zlib with the server.
	EnableCompression bool
}

// DefaultMongoConfig returns MongoDB configuration sized for an append-mostly
// activity log.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

func (c MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.ServerSelectionTimeout).
		SetSocketTimeout(c.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if c.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

// MongoDB holds the client and the handles of the activity log store.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Logs     *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings the server and ensures the query
// indexes of the logs collection. The client is disconnected again when any
// of those steps fails.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{Client: client, Database: db, Logs: db.Collection(LogsCollection)}

	if err := m.prepare(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) prepare(ctx context.Context) error {
	if err := m.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	if _, err := m.Logs.Indexes().CreateMany(ctx, logsIndexes); err != nil {
		return fmt.Errorf("create %s indexes: %w", LogsCollection, err)
	}
	return nil
}

// SetLogsTTL makes log entries expire ttl after their timestamp. The TTL
// index is created on first use and its expiry is changed in place with
// collMod afterwards.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	seconds := int32(ttl / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("logs ttl must be at least one second, got %s", ttl)
	}

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndexName).SetExpireAfterSeconds(seconds),
	})

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeIndexOptionsConflict {
		return err
	}

	return m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: LogsCollection},
		{Key: "index", Value: bson.D{
			{Key: "name", Value: logsTTLIndexName},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server, giving up after two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
