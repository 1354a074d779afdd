package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogEntryDocument is the stored form of a request or audit log entry.
type LogEntryDocument struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	Level       string                 `bson:"level" json:"level"`
	Message     string                 `bson:"message" json:"message"`
	RequestID   string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method      string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path        string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode  int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration    int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP          string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent   string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error       string                 `bson:"error,omitempty" json:"error,omitempty"`
	WarehouseID int                    `bson:"warehouse_id,omitempty" json:"warehouse_id,omitempty"`
	ActionType  string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields      map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// LogQueryOptions filters log documents.
type LogQueryOptions struct {
	RequestID   string
	Level       string
	ActionType  string
	WarehouseID int
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}

func (o LogQueryOptions) filter() bson.M {
	filter := bson.M{}
	if o.RequestID != "" {
		filter["request_id"] = o.RequestID
	}
	if o.Level != "" {
		filter["level"] = o.Level
	}
	if o.ActionType != "" {
		filter["action_type"] = o.ActionType
	}
	if o.WarehouseID != 0 {
		filter["warehouse_id"] = o.WarehouseID
	}
	if o.StartTime != nil || o.EndTime != nil {
		window := bson.M{}
		if o.StartTime != nil {
			window["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			window["$lte"] = *o.EndTime
		}
		filter["timestamp"] = window
	}
	return filter
}

// LogsRepository stores log documents in the logs collection.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository returns a repository bound to db.Logs.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

func stamp(entry *LogEntryDocument) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
}

// Create inserts one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	stamp(entry)
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one round trip.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stamp(entry)
		docs[i] = entry
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	findOptions := options.Find().SetSort(bson.M{"timestamp": -1})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*LogEntryDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
