package service

import (
	"context"
	"time"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggingService stores request logs and fulfillment audit entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl persists entries through a logs repository.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService returns a LoggingService backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, toDocument(entry))
}

func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = toDocument(entry)
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, toRepositoryOptions(opts))
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = fromDocument(doc)
	}
	return entries, nil
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, toRepositoryOptions(opts))
}

// NewNopLoggingService discards writes and reads nothing. It stands in when
// MongoDB is disabled.
func NewNopLoggingService() LoggingService {
	return nopLoggingService{}
}

type nopLoggingService struct{}

func (nopLoggingService) CreateLog(context.Context, *model.LogEntry) error    { return nil }
func (nopLoggingService) CreateLogs(context.Context, []*model.LogEntry) error { return nil }
func (nopLoggingService) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}
func (nopLoggingService) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return []model.LogEntry{}, nil
}

func toRepositoryOptions(opts model.LogQueryOptions) repository.LogQueryOptions {
	return repository.LogQueryOptions{
		RequestID:   opts.RequestID,
		Level:       opts.Level,
		ActionType:  opts.ActionType,
		WarehouseID: opts.WarehouseID,
		StartTime:   opts.StartTime,
		EndTime:     opts.EndTime,
		Limit:       opts.Limit,
		Skip:        opts.Skip,
	}
}

func toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return &repository.LogEntryDocument{
		ID:          entry.ID,
		Timestamp:   entry.Timestamp,
		Level:       entry.Level,
		Message:     entry.Message,
		RequestID:   entry.RequestID,
		Method:      entry.Method,
		Path:        entry.Path,
		StatusCode:  entry.StatusCode,
		Duration:    entry.Duration,
		IP:          entry.IP,
		UserAgent:   entry.UserAgent,
		Error:       entry.Error,
		WarehouseID: entry.WarehouseID,
		ActionType:  entry.ActionType,
		Fields:      entry.Fields,
	}
}

func fromDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:          doc.ID,
		Timestamp:   doc.Timestamp,
		Level:       doc.Level,
		Message:     doc.Message,
		RequestID:   doc.RequestID,
		Method:      doc.Method,
		Path:        doc.Path,
		StatusCode:  doc.StatusCode,
		Duration:    doc.Duration,
		IP:          doc.IP,
		UserAgent:   doc.UserAgent,
		Error:       doc.Error,
		WarehouseID: doc.WarehouseID,
		ActionType:  doc.ActionType,
		Fields:      doc.Fields,
	}
}
