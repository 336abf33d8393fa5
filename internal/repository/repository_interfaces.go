package repository

import (
	"context"
)

// LogsRepositoryInterface is the activity log storage used by the logging
// service. LogsRepository implements it against MongoDB and
// LogsRepositoryWithCircuitBreaker guards another implementation.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
	TopEntities(ctx context.Context, opts TopEntitiesOptions) ([]*EntityCountDocument, error)
}

var (
	_ LogsRepositoryInterface = (*LogsRepository)(nil)
	_ LogsRepositoryInterface = (*LogsRepositoryWithCircuitBreaker)(nil)
)
