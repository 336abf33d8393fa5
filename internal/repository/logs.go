// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is the stored shape of one activity log entry.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp  time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	ActionType string                 `bson:"action_type,omitempty"`
	RequestID  string                 `bson:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	Event      string                 `bson:"event,omitempty"`
	EntityID   string                 `bson:"entity_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty"`
}

// EntityCountDocument is one row of the TopEntities aggregation.
type EntityCountDocument struct {
	EntityID string    `bson:"_id"`
	Count    int64     `bson:"count"`
	LastSeen time.Time `bson:"last_seen"`
}

// LogQueryOptions narrows Query and Count. Empty fields are not filtered on.
type LogQueryOptions struct {
	RequestID string
	Level     string
	Event     string
	Method    string
	Path      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

// TopEntitiesOptions narrows TopEntities.
type TopEntitiesOptions struct {
	Event string
	Since *time.Time
	Limit int
}

// LogsRepository reads and writes the activity log collection.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository returns a repository over db's logs collection.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts a batch of entries. The insert is unordered, so one
// rejected document does not stop the others.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}
	batch := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		stamp(entry)
		batch = append(batch, entry)
	}
	_, err := r.collection.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	find := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.Filter(), find)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	docs := []*LogEntryDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count returns how many entries match, ignoring Limit and Skip.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.Filter())
}

// TopEntities ranks the entity ids recorded for an event by how often they
// occur. Ties are broken by entity id so the order is stable.
func (r *LogsRepository) TopEntities(ctx context.Context, opts TopEntitiesOptions) ([]*EntityCountDocument, error) {
	cursor, err := r.collection.Aggregate(ctx, opts.Pipeline())
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	rows := []*EntityCountDocument{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Filter translates the options into a find filter.
func (o LogQueryOptions) Filter() bson.M {
	filter := bson.M{}
	for field, value := range map[string]string{
		"request_id": o.RequestID,
		"level":      o.Level,
		"event":      o.Event,
		"method":     o.Method,
	} {
		if value != "" {
			filter[field] = value
		}
	}
	if o.Path != "" {
		filter["path"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(o.Path), Options: "i"}}
	}
	if window := timeRange(o.StartTime, o.EndTime); window != nil {
		filter["timestamp"] = window
	}
	return filter
}

// Pipeline builds the aggregation run by TopEntities.
func (o TopEntitiesOptions) Pipeline() mongo.Pipeline {
	match := bson.D{
		{Key: "event", Value: o.Event},
		{Key: "entity_id", Value: bson.M{"$exists": true, "$ne": ""}},
	}
	if window := timeRange(o.Since, nil); window != nil {
		match = append(match, bson.E{Key: "timestamp", Value: window})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$entity_id"},
			{Key: "count", Value: bson.M{"$sum": 1}},
			{Key: "last_seen", Value: bson.M{"$max": "$timestamp"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if o.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(o.Limit)}})
	}
	return pipeline
}

func timeRange(from, to *time.Time) bson.M {
	if from == nil && to == nil {
		return nil
	}
	window := bson.M{}
	if from != nil {
		window["$gte"] = *from
	}
	if to != nil {
		window["$lte"] = *to
	}
	return window
}

func stamp(entry *LogEntryDocument) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}
