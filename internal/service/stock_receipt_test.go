//go:build !integration

package service

import (
	"context"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/events"
	"github.com/guttosm/shipit-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStockReceiver_Receive(t *testing.T) {
	s, products := newFixtureStore(t)
	publisher := new(mocks.MockPublisher)
	audit := new(mocks.MockLoggingService)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.TypeStockReceived && e.WarehouseID == warehouse
	})).Return(nil)
	audit.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.ActionType == model.ActionStockReceipt && e.Fields["lines"] == 2
	})).Return(nil)

	err := NewStockReceiver(s, publisher, audit).Receive(context.Background(), StockReceipt{
		WarehouseID: warehouse,
		GCP:         "0000346",
		Lines: []model.OrderLine{
			{GTIN: gtinLeash, Quantity: 25},
			{GTIN: gtinCrate, Quantity: 4},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1025, heldAt(t, s, products[gtinLeash]))
	assert.Equal(t, 5, heldAt(t, s, products[gtinCrate]))
	publisher.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestStockReceiver_CreatesMissingStockRecord(t *testing.T) {
	s, products := newFixtureStore(t)

	err := NewStockReceiver(s, nil, nil).Receive(context.Background(), StockReceipt{
		WarehouseID: warehouse,
		Lines:       []model.OrderLine{{GTIN: gtinFeeder, Quantity: 12}},
	})

	require.NoError(t, err)
	assert.Equal(t, 12, heldAt(t, s, products[gtinFeeder]))
}

func TestStockReceiver_RejectsWholeReceipt(t *testing.T) {
	s, products := newFixtureStore(t)
	publisher := new(mocks.MockPublisher)

	err := NewStockReceiver(s, publisher, nil).Receive(context.Background(), StockReceipt{
		WarehouseID: warehouse,
		GCP:         "0000346",
		Lines: []model.OrderLine{
			{GTIN: gtinLeash, Quantity: 25},
			{GTIN: gtinFeeder, Quantity: 5},
			{GTIN: "unknown", Quantity: 1},
			{GTIN: gtinBowl, Quantity: 0},
		},
	})

	problems := rejection(t, err)
	require.Len(t, problems, 3)
	assert.Equal(t, "unknown", model.Subject(problems[0]))
	assert.Equal(t, gtinBowl, model.Subject(problems[1]))
	assert.Equal(t, gtinFeeder, model.Subject(problems[2]))
	assert.Contains(t, problems[2].Error(), "does not match")

	assert.Equal(t, 1000, heldAt(t, s, products[gtinLeash]))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
