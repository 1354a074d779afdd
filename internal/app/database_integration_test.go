//go:build integration

package app

import (
	"context"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()

	components := InitializeDatabase(mongoConfig(t))

	require.NotNil(t, components)
	defer func() { _ = components.DB.Close(ctx) }()
	assert.NotNil(t, components.LoggingService)
	assert.NotNil(t, components.LogsCircuitBreaker)
	assert.False(t, components.LogsCircuitBreaker.IsOpen())

	entry := &model.LogEntry{Level: "info", Message: "stock received", WarehouseID: 4, ActionType: model.ActionStockReceipt}
	require.NoError(t, components.LoggingService.CreateLog(ctx, entry))

	count, err := components.LoggingService.CountLogs(ctx, model.LogQueryOptions{WarehouseID: 4, ActionType: model.ActionStockReceipt})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
