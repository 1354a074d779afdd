// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/guttosm/shipit-service/internal/domain/model"

// OrderLineRequest is a single gtin and quantity pair of an order body.
type OrderLineRequest struct {
	GTIN     string `json:"gtin" example:"0000346374230"`
	Quantity int    `json:"quantity" example:"10"`
} // @name OrderLineRequest

// OutboundOrderRequest represents the JSON request body for the outbound order endpoint.
//
// Per-line checks (unknown gtins, duplicates, non-positive quantities) belong to
// the fulfillment service so they can be reported together; only the envelope
// is validated here.
//
// @Description Outbound order for one warehouse
type OutboundOrderRequest struct {
	// WarehouseID identifies the warehouse that ships the order.
	WarehouseID int `json:"warehouseId" example:"1" minimum:"1"`
	// OrderLines lists the products and quantities to ship.
	OrderLines []OrderLineRequest `json:"orderLines"`
} // @name OutboundOrderRequest

// StockReceiptRequest represents the JSON request body for the stock receipt endpoint.
// @Description Goods delivered to a warehouse by one supplier
type StockReceiptRequest struct {
	// GCP optionally names the supplier; when set every line must belong to it.
	GCP        string             `json:"gcp,omitempty" example:"0000346"`
	OrderLines []OrderLineRequest `json:"orderLines"`
} // @name StockReceiptRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidWarehouseID is returned when warehouseId is missing or not positive.
	ErrInvalidWarehouseID = &ValidationError{
		Field:   "warehouseId",
		Message: "must be a positive integer",
	}
	// ErrNoOrderLines is returned when orderLines is empty.
	ErrNoOrderLines = &ValidationError{
		Field:   "orderLines",
		Message: "must contain at least one line",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs envelope validation on the request.
func (r *OutboundOrderRequest) Validate() error {
	if r.WarehouseID <= 0 {
		return ErrInvalidWarehouseID
	}
	if len(r.OrderLines) == 0 {
		return ErrNoOrderLines
	}
	return nil
}

// ToModel converts the request into the domain order.
func (r *OutboundOrderRequest) ToModel() model.OutboundOrder {
	return model.OutboundOrder{
		WarehouseID: r.WarehouseID,
		Lines:       toOrderLines(r.OrderLines),
	}
}

// Validate performs envelope validation on the request.
func (r *StockReceiptRequest) Validate() error {
	if len(r.OrderLines) == 0 {
		return ErrNoOrderLines
	}
	return nil
}

// Lines converts the request lines into domain order lines.
func (r *StockReceiptRequest) Lines() []model.OrderLine {
	return toOrderLines(r.OrderLines)
}

func toOrderLines(in []OrderLineRequest) []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, model.OrderLine{GTIN: l.GTIN, Quantity: l.Quantity})
	}
	return lines
}
