package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
)

// StockLedger turns validated lines into stock mutations. It must run inside a
// warehouse unit of work so that all of a request's mutations commit together.
type StockLedger struct{}

// NewStockLedger returns a ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Reserve removes the quantity of every line from warehouseID. A ledger
// mismatch is returned as *model.ConsistencyError.
func (l *StockLedger) Reserve(ctx context.Context, stock repository.StockWriter, warehouseID int, lines []model.ValidatedLine) error {
	alterations := make([]model.StockAlteration, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("reserve %s: non-positive quantity %d", line.Product.GTIN, line.Quantity)
		}
		alterations = append(alterations, model.StockAlteration{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	if len(alterations) == 0 {
		return nil
	}

	err := stock.DecrementStock(ctx, warehouseID, alterations)
	var consistency *model.ConsistencyError
	if errors.As(err, &consistency) {
		return consistency
	}
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	return nil
}

// Receive adds the quantity of every line to warehouseID.
func (l *StockLedger) Receive(ctx context.Context, stock repository.StockWriter, warehouseID int, lines []model.ValidatedLine) error {
	alterations := make([]model.StockAlteration, 0, len(lines))
	for _, line := range lines {
		alterations = append(alterations, model.StockAlteration{ProductID: line.Product.ID, Quantity: line.Quantity})
	}
	if len(alterations) == 0 {
		return nil
	}
	if err := stock.AddStock(ctx, warehouseID, alterations); err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}
