package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
)

// OrderValidator checks order lines against the catalog and a warehouse's stock.
// It never stops at the first problem: every problem is collected into one
// *model.OrderRejectedError. Any other error is an infrastructure failure.
type OrderValidator struct{}

// NewOrderValidator returns a validator.
func NewOrderValidator() *OrderValidator {
	return &OrderValidator{}
}

// ValidateLines resolves gtins without looking at stock.
func (v *OrderValidator) ValidateLines(ctx context.Context, catalog repository.CatalogReader, lines []model.OrderLine) ([]model.ValidatedLine, error) {
	validated, problems, err := v.resolve(ctx, catalog, lines)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, &model.OrderRejectedError{Errors: problems}
	}
	return validated, nil
}

// Validate resolves gtins and checks that warehouseID holds enough of every
// resolvable product, even when other lines are already invalid.
func (v *OrderValidator) Validate(ctx context.Context, catalog repository.CatalogReader, stock repository.StockReader, warehouseID int, lines []model.OrderLine) ([]model.ValidatedLine, error) {
	validated, problems, err := v.resolve(ctx, catalog, lines)
	if err != nil {
		return nil, err
	}

	for _, l := range validated {
		held, found, err := stock.HeldQuantity(ctx, warehouseID, l.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("read stock of %s: %w", l.Product.GTIN, err)
		}
		if !found || held < l.Quantity {
			problems = append(problems, &model.InsufficientStockError{
				GTIN:      l.Product.GTIN,
				Requested: l.Quantity,
				Available: held,
				Held:      found,
			})
		}
	}

	if len(problems) > 0 {
		return nil, &model.OrderRejectedError{Errors: problems}
	}
	return validated, nil
}

// resolve returns the well formed, known lines along with the problems of all
// other lines. A duplicated gtin is reported once and its first occurrence is
// still resolved and returned, so it is checked like any other line; the
// duplicate problem guarantees the order is rejected.
func (v *OrderValidator) resolve(ctx context.Context, catalog repository.CatalogReader, lines []model.OrderLine) ([]model.ValidatedLine, []error, error) {
	if len(lines) == 0 {
		return nil, []error{&model.ValidationError{Reason: "order has no lines"}}, nil
	}

	counts := make(map[string]int, len(lines))
	for _, l := range lines {
		counts[l.GTIN]++
	}

	var problems []error
	validated := make([]model.ValidatedLine, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l.GTIN) == "" {
			problems = append(problems, &model.ValidationError{Reason: fmt.Sprintf("order line %d has no gtin", i+1)})
			continue
		}
		switch n := counts[l.GTIN]; {
		case n < 0:
			// duplicate already reported
			continue
		case n > 1:
			problems = append(problems, model.NewDuplicateLineError(l.GTIN))
			counts[l.GTIN] = -1
		}

		product, err := catalog.ProductByGTIN(ctx, l.GTIN)
		if errors.Is(err, model.ErrNotFound) {
			problems = append(problems, &model.NotFoundError{GTIN: l.GTIN})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve product %s: %w", l.GTIN, err)
		}
		if l.Quantity <= 0 {
			problems = append(problems, &model.ValidationError{GTIN: l.GTIN, Reason: "quantity must be positive for product"})
			continue
		}
		validated = append(validated, model.ValidatedLine{Product: *product, Quantity: l.Quantity})
	}
	return validated, problems, nil
}
