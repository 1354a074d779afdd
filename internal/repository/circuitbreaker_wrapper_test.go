//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogsRepository struct {
	mock.Mock
}

func (m *mockLogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *mockLogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	docs, _ := args.Get(0).([]*LogEntryDocument)
	return docs, args.Error(1)
}

func (m *mockLogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func newTrippingBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour, Name: "logs"})
}

func TestLogsRepositoryWithCircuitBreaker_WritesDroppedWhenOpen(t *testing.T) {
	ctx := context.Background()
	inner := new(mockLogsRepository)
	inner.On("Create", ctx, mock.Anything).Return(errors.New("connection refused")).Once()
	repo := NewLogsRepositoryWithCircuitBreaker(inner, newTrippingBreaker())

	err := repo.Create(ctx, &LogEntryDocument{Message: "first"})
	assert.Error(t, err)
	require.True(t, repo.GetCircuitBreaker().IsOpen())

	assert.NoError(t, repo.Create(ctx, &LogEntryDocument{Message: "second"}))
	assert.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{{Message: "third"}}))
	inner.AssertNumberOfCalls(t, "Create", 1)
	inner.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestLogsRepositoryWithCircuitBreaker_ReadsReportOpen(t *testing.T) {
	ctx := context.Background()
	inner := new(mockLogsRepository)
	inner.On("Count", ctx, LogQueryOptions{}).Return(int64(0), errors.New("timeout")).Once()
	repo := NewLogsRepositoryWithCircuitBreaker(inner, newTrippingBreaker())

	_, err := repo.Count(ctx, LogQueryOptions{})
	require.Error(t, err)

	_, err = repo.Query(ctx, LogQueryOptions{Limit: 10})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestLogsRepositoryWithCircuitBreaker_PassThrough(t *testing.T) {
	ctx := context.Background()
	inner := new(mockLogsRepository)
	docs := []*LogEntryDocument{{Message: "a"}}
	inner.On("Query", ctx, LogQueryOptions{ActionType: "outbound_order"}).Return(docs, nil)
	inner.On("Count", ctx, LogQueryOptions{ActionType: "outbound_order"}).Return(int64(1), nil)
	repo := NewLogsRepositoryWithCircuitBreaker(inner, circuitbreaker.New(circuitbreaker.DefaultConfig()))

	got, err := repo.Query(ctx, LogQueryOptions{ActionType: "outbound_order"})
	require.NoError(t, err)
	assert.Equal(t, docs, got)

	n, err := repo.Count(ctx, LogQueryOptions{ActionType: "outbound_order"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
