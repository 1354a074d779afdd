// Package events publishes fulfillment domain events to Kafka.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Event types.
const (
	TypeFulfillmentConfirmed = "fulfillment.confirmed"
	TypeStockReceived        = "stock.received"
)

// Event is the envelope written to the broker. Events of one warehouse share a
// message key so consumers see them in order.
type Event struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	WarehouseID int         `json:"warehouseId"`
	RequestID   string      `json:"requestId,omitempty"`
	OccurredAt  time.Time   `json:"occurredAt"`
	Payload     interface{} `json:"payload"`
}

// Publisher delivers events. Publish must not be retried by callers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New stamps a new event with a random id.
func New(eventType string, warehouseID int, requestID string, payload interface{}) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		WarehouseID: warehouseID,
		RequestID:   requestID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// TruckLoad is one truck of a confirmed fulfillment.
type TruckLoad struct {
	TruckNumber int               `json:"truckNumber"`
	Orders      []model.OrderLine `json:"orders"`
	LoadKg      decimal.Decimal   `json:"truckLoadInKg"`
}

// FulfillmentConfirmed is the payload of TypeFulfillmentConfirmed.
type FulfillmentConfirmed struct {
	TrucksNeeded int         `json:"trucksNeeded"`
	Trucks       []TruckLoad `json:"trucks"`
}

// NewFulfillmentConfirmed builds the payload from a packed result.
func NewFulfillmentConfirmed(result *model.FulfillmentResult) FulfillmentConfirmed {
	trucks := make([]TruckLoad, len(result.Trucks))
	for i, t := range result.Trucks {
		trucks[i] = TruckLoad{TruckNumber: t.Number, Orders: t.Lines, LoadKg: t.LoadKg}
	}
	return FulfillmentConfirmed{TrucksNeeded: result.TrucksNeeded, Trucks: trucks}
}

// StockReceived is the payload of TypeStockReceived.
type StockReceived struct {
	Lines []model.OrderLine `json:"lines"`
}
