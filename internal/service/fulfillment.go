package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/events"
	"github.com/guttosm/shipit-service/internal/logger"
	"github.com/guttosm/shipit-service/internal/metrics"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Fulfillment outcomes reported in metrics and audit entries.
const (
	OutcomeConfirmed   = "confirmed"
	OutcomeRejected    = "rejected"
	OutcomeConsistency = "consistency_error"
	OutcomeError       = "error"
)

// FulfillmentService turns outbound orders into truck manifests.
type FulfillmentService interface {
	Fulfill(ctx context.Context, order model.OutboundOrder) (*model.FulfillmentResult, error)
}

// FulfillmentOption configures a FulfillmentOrchestrator.
type FulfillmentOption func(*FulfillmentOrchestrator)

// WithCatalog resolves gtins through catalog instead of the warehouse unit of
// work, typically a CachedCatalog.
func WithCatalog(catalog repository.CatalogReader) FulfillmentOption {
	return func(o *FulfillmentOrchestrator) {
		o.catalog = catalog
	}
}

// WithPublisher announces confirmed fulfillments.
func WithPublisher(p events.Publisher) FulfillmentOption {
	return func(o *FulfillmentOrchestrator) {
		if p != nil {
			o.publisher = p
		}
	}
}

// WithAuditLog records an audit entry per confirmed fulfillment.
func WithAuditLog(l LoggingService) FulfillmentOption {
	return func(o *FulfillmentOrchestrator) {
		if l != nil {
			o.audit = l
		}
	}
}

// FulfillmentOrchestrator runs validate, reserve, pack and confirm for one order.
//
// Validation and reservation share one warehouse unit of work, so concurrent
// orders for the same warehouse cannot both pass validation against the same
// units. Nothing is mutated when validation fails, and packing never runs
// after a failed reservation.
type FulfillmentOrchestrator struct {
	store     repository.WarehouseStore
	catalog   repository.CatalogReader
	validator *OrderValidator
	ledger    *StockLedger
	packer    TruckPacker
	publisher events.Publisher
	audit     LoggingService
}

var _ FulfillmentService = (*FulfillmentOrchestrator)(nil)

// NewFulfillmentOrchestrator wires the pipeline over store and packer.
func NewFulfillmentOrchestrator(store repository.WarehouseStore, packer TruckPacker, opts ...FulfillmentOption) *FulfillmentOrchestrator {
	o := &FulfillmentOrchestrator{
		store:     store,
		validator: NewOrderValidator(),
		ledger:    NewStockLedger(),
		packer:    packer,
		publisher: events.NopPublisher{},
		audit:     NewNopLoggingService(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Fulfill validates order, reserves its stock and packs it onto trucks.
// A rejected order returns *model.OrderRejectedError; a broken ledger returns
// *model.ConsistencyError. Neither is retried.
func (o *FulfillmentOrchestrator) Fulfill(ctx context.Context, order model.OutboundOrder) (*model.FulfillmentResult, error) {
	start := time.Now()
	ctx, span := tracing.Tracer().Start(ctx, "fulfillment.fulfill", trace.WithAttributes(
		attribute.Int("warehouse.id", order.WarehouseID),
		attribute.Int("order.lines", len(order.Lines)),
	))
	defer span.End()

	state := model.StateReceived
	advance := func(next model.FulfillmentState) error {
		s, err := state.Transition(next)
		if err != nil {
			return err
		}
		state = s
		span.AddEvent(string(s))
		return nil
	}

	var validated []model.ValidatedLine
	err := o.store.InWarehouse(ctx, order.WarehouseID, func(tx repository.WarehouseTx) error {
		catalog := o.catalog
		if catalog == nil {
			catalog = tx
		}
		lines, err := o.validator.Validate(ctx, catalog, tx, order.WarehouseID, order.Lines)
		if err != nil {
			return err
		}
		if err := advance(model.StateValidated); err != nil {
			return err
		}
		if err := o.ledger.Reserve(ctx, tx, order.WarehouseID, lines); err != nil {
			return err
		}
		validated = lines
		return advance(model.StateStockReserved)
	})
	if err != nil {
		return nil, o.fail(ctx, span, start, state, err)
	}

	result := &model.FulfillmentResult{
		TrucksNeeded: o.packer.TrucksNeeded(validated),
		Trucks:       o.packer.Pack(validated),
	}
	if err := advance(model.StatePacked); err != nil {
		return nil, o.fail(ctx, span, start, state, err)
	}
	if err := advance(model.StateConfirmed); err != nil {
		return nil, o.fail(ctx, span, start, state, err)
	}
	result.State = state

	units := 0
	for _, l := range validated {
		units += l.Quantity
	}
	span.SetAttributes(
		attribute.Int("fulfillment.trucks", len(result.Trucks)),
		attribute.Int("fulfillment.trucks_needed", result.TrucksNeeded),
	)
	metrics.RecordFulfillment(time.Since(start), OutcomeConfirmed, len(result.Trucks), units)

	o.announce(ctx, order, result, units)
	return result, nil
}

// fail classifies err, moves a still-received order to rejected and records it.
func (o *FulfillmentOrchestrator) fail(ctx context.Context, span trace.Span, start time.Time, state model.FulfillmentState, err error) error {
	outcome := OutcomeError
	var (
		rejected    *model.OrderRejectedError
		consistency *model.ConsistencyError
	)
	switch {
	case errors.As(err, &rejected):
		outcome = OutcomeRejected
		if _, terr := state.Transition(model.StateRejected); terr != nil {
			err = errors.Join(err, terr)
		}
	case errors.As(err, &consistency):
		outcome = OutcomeConsistency
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	metrics.RecordFulfillment(time.Since(start), outcome, 0, 0)

	l := logger.FromContext(ctx)
	event := l.Warn()
	if outcome != OutcomeRejected {
		event = l.Error()
	}
	event.Err(err).
		Str("outcome", outcome).
		Str("state", string(state)).
		Msg("Outbound order not fulfilled")
	return err
}

// announce publishes the confirmation and writes the audit entry. Stock is
// already committed, so failures are only logged.
func (o *FulfillmentOrchestrator) announce(ctx context.Context, order model.OutboundOrder, result *model.FulfillmentResult, units int) {
	requestID := logger.RequestIDFromContext(ctx)
	l := logger.FromContext(ctx)

	event := events.New(events.TypeFulfillmentConfirmed, order.WarehouseID, requestID, events.NewFulfillmentConfirmed(result))
	if err := o.publisher.Publish(ctx, event); err != nil {
		l.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to publish fulfillment event")
	}

	entry := (&model.LogEntry{
		Level:       "info",
		Message:     "outbound order confirmed",
		RequestID:   requestID,
		WarehouseID: order.WarehouseID,
		ActionType:  model.ActionOutboundOrder,
	}).WithFields(map[string]interface{}{
		"event_id":      event.ID,
		"lines":         len(order.Lines),
		"units":         units,
		"trucks":        len(result.Trucks),
		"trucks_needed": result.TrucksNeeded,
	})
	if err := o.audit.CreateLog(ctx, entry); err != nil {
		l.Warn().Err(err).Msg("Failed to write fulfillment audit entry")
	}

	l.Info().
		Int("warehouse_id", order.WarehouseID).
		Int("trucks", len(result.Trucks)).
		Int("units", units).
		Msg("Outbound order confirmed")
}
