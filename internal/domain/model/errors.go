package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when a lookup has no match.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or duplicate request content.
type ValidationError struct {
	GTIN   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.GTIN == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.GTIN)
}

// NewDuplicateLineError reports a gtin that appears more than once in an order.
func NewDuplicateLineError(gtin string) *ValidationError {
	return &ValidationError{GTIN: gtin, Reason: "duplicate order line for product"}
}

// NotFoundError reports a gtin missing from the catalog.
type NotFoundError struct {
	GTIN string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown product gtin: %s", e.GTIN)
}

// InsufficientStockError reports a request for more units than a warehouse holds.
// Held is false when the warehouse has no stock record for the product.
type InsufficientStockError struct {
	GTIN      string
	Requested int
	Available int
	Held      bool
}

func (e *InsufficientStockError) Error() string {
	if !e.Held {
		return fmt.Sprintf("product %s: no stock held, requested %d", e.GTIN, e.Requested)
	}
	return fmt.Sprintf("product %s: insufficient stock, requested %d, available %d",
		e.GTIN, e.Requested, e.Available)
}

// ConsistencyError means a stock mutation touched an unexpected number of
// records. It signals a broken ledger, not a bad request.
type ConsistencyError struct {
	WarehouseID  int
	ProductID    int64
	RowsAffected int64
	Detail       string
}

func (e *ConsistencyError) Error() string {
	msg := fmt.Sprintf("stock ledger inconsistent for warehouse %d product %d: %d rows affected",
		e.WarehouseID, e.ProductID, e.RowsAffected)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// OrderRejectedError aggregates every problem found in one order.
type OrderRejectedError struct {
	Errors []error
}

func (e *OrderRejectedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "order rejected: " + strings.Join(msgs, "; ")
}

func (e *OrderRejectedError) Unwrap() []error {
	return e.Errors
}

// Subject returns the gtin an error refers to, or "" when it has none.
func Subject(err error) string {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		insufficient *InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		return validation.GTIN
	case errors.As(err, &notFound):
		return notFound.GTIN
	case errors.As(err, &insufficient):
		return insufficient.GTIN
	}
	return ""
}
