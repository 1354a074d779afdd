//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStockWriter struct {
	decrementErr error
	decremented  []model.StockAlteration
	added        []model.StockAlteration
}

func (s *stubStockWriter) DecrementStock(_ context.Context, _ int, a []model.StockAlteration) error {
	s.decremented = append(s.decremented, a...)
	return s.decrementErr
}

func (s *stubStockWriter) AddStock(_ context.Context, _ int, a []model.StockAlteration) error {
	s.added = append(s.added, a...)
	return nil
}

func TestStockLedger_Reserve(t *testing.T) {
	s, products := newFixtureStore(t)
	lines := []model.ValidatedLine{
		{Product: products[gtinBowl], Quantity: 6666},
		{Product: products[gtinLeash], Quantity: 1000},
	}

	err := s.InWarehouse(context.Background(), warehouse, func(tx repository.WarehouseTx) error {
		return NewStockLedger().Reserve(context.Background(), tx, warehouse, lines)
	})

	require.NoError(t, err)
	assert.Equal(t, 20000-6666, heldAt(t, s, products[gtinBowl]))
	assert.Equal(t, 0, heldAt(t, s, products[gtinLeash]))
}

func TestStockLedger_ReserveIsAllOrNothing(t *testing.T) {
	s, products := newFixtureStore(t)
	lines := []model.ValidatedLine{
		{Product: products[gtinBowl], Quantity: 10},
		{Product: products[gtinFeeder], Quantity: 1},
	}

	err := s.InWarehouse(context.Background(), warehouse, func(tx repository.WarehouseTx) error {
		return NewStockLedger().Reserve(context.Background(), tx, warehouse, lines)
	})

	var consistency *model.ConsistencyError
	require.ErrorAs(t, err, &consistency)
	assert.Equal(t, products[gtinFeeder].ID, consistency.ProductID)
	assert.Equal(t, 20000, heldAt(t, s, products[gtinBowl]))
}

func TestStockLedger_ReservePassesConsistencyErrorThrough(t *testing.T) {
	want := &model.ConsistencyError{WarehouseID: 1, ProductID: 7, RowsAffected: 2}
	w := &stubStockWriter{decrementErr: want}

	err := NewStockLedger().Reserve(context.Background(), w, 1, []model.ValidatedLine{{Product: model.Product{ID: 7}, Quantity: 1}})

	assert.Same(t, want, err)
}

func TestStockLedger_ReserveWrapsOtherErrors(t *testing.T) {
	w := &stubStockWriter{decrementErr: errors.New("deadlock detected")}

	err := NewStockLedger().Reserve(context.Background(), w, 1, []model.ValidatedLine{{Product: model.Product{ID: 7}, Quantity: 1}})

	require.Error(t, err)
	var consistency *model.ConsistencyError
	assert.False(t, errors.As(err, &consistency))
	assert.Contains(t, err.Error(), "decrement stock")
}

func TestStockLedger_ReserveRejectsNonPositive(t *testing.T) {
	w := &stubStockWriter{}

	err := NewStockLedger().Reserve(context.Background(), w, 1, []model.ValidatedLine{{Product: model.Product{ID: 7, GTIN: "x"}, Quantity: 0}})

	assert.Error(t, err)
	assert.Empty(t, w.decremented)
}

func TestStockLedger_ReserveNothing(t *testing.T) {
	w := &stubStockWriter{}
	assert.NoError(t, NewStockLedger().Reserve(context.Background(), w, 1, nil))
	assert.Empty(t, w.decremented)
}

func TestStockLedger_Receive(t *testing.T) {
	s, products := newFixtureStore(t)

	err := s.InWarehouse(context.Background(), warehouse, func(tx repository.WarehouseTx) error {
		return NewStockLedger().Receive(context.Background(), tx, warehouse, []model.ValidatedLine{
			{Product: products[gtinLeash], Quantity: 25},
			{Product: products[gtinFeeder], Quantity: 40},
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1025, heldAt(t, s, products[gtinLeash]))
	assert.Equal(t, 40, heldAt(t, s, products[gtinFeeder]))
}
