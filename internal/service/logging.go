package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

// Page sizes applied to activity log reads.
const (
	DefaultLogQueryLimit = 50
	MaxLogQueryLimit     = 500

	DefaultTopEntitiesLimit = 10
	MaxTopEntitiesLimit     = 100
)

// LoggingService stores and reads the activity log: HTTP requests written by
// the async logger and UI events written by the analytics recorder.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs retrieves log entries matching the query options, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs returns the count of log entries matching the query options.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)

	// TopEntities ranks the entities recorded for one event, most frequent first.
	TopEntities(ctx context.Context, opts model.TopEntitiesOptions) ([]model.EntityCount, error)
}

// LoggingServiceImpl implements LoggingService over a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService returns a LoggingService storing entries in repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo, now: time.Now}
}

// CreateLog stores entry, assigning its ID and timestamp when unset.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, s.document(entry))
}

// CreateLogs stores entries in one bulk write.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, s.document(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

// QueryLogs reads matching entries. The limit defaults to
// DefaultLogQueryLimit and is capped at MaxLogQueryLimit.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	opts.Limit = clampLimit(opts.Limit, DefaultLogQueryLimit, MaxLogQueryLimit)

	docs, err := s.repo.Query(ctx, repository.LogQueryOptions(opts))
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = model.LogEntry(*doc)
	}
	return entries, nil
}

// CountLogs counts matching entries.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repository.LogQueryOptions(opts))
}

// TopEntities ranks entities for opts.Event. The limit defaults to
// DefaultTopEntitiesLimit and is capped at MaxTopEntitiesLimit.
func (s *LoggingServiceImpl) TopEntities(ctx context.Context, opts model.TopEntitiesOptions) ([]model.EntityCount, error) {
	opts.Limit = clampLimit(opts.Limit, DefaultTopEntitiesLimit, MaxTopEntitiesLimit)

	rows, err := s.repo.TopEntities(ctx, repository.TopEntitiesOptions(opts))
	if err != nil {
		return nil, err
	}
	counts := make([]model.EntityCount, len(rows))
	for i, row := range rows {
		counts[i] = model.EntityCount(*row)
	}
	return counts, nil
}

// document converts entry for storage. model.LogEntry and
// repository.LogEntryDocument must keep identical field lists.
func (s *LoggingServiceImpl) document(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	doc := repository.LogEntryDocument(*entry)
	return &doc
}

func clampLimit(limit, def, max int) int {
	switch {
	case limit <= 0:
		return def
	case limit > max:
		return max
	default:
		return limit
	}
}
