//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(mongoContainer.URI, "test_breaker")
	require.NoError(t, err)

	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "audit-logs",
	})
	logs := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), cb)

	require.NoError(t, logs.Create(ctx, &repository.LogEntryDocument{Level: "info", Message: "before outage"}))
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())

	require.NoError(t, db.Close(ctx))

	// first write after disconnect trips the breaker, later writes are dropped silently
	_ = logs.Create(ctx, &repository.LogEntryDocument{Level: "info", Message: "during outage"})
	assert.True(t, cb.IsOpen())
	assert.NoError(t, logs.Create(ctx, &repository.LogEntryDocument{Level: "info", Message: "dropped"}))
}
