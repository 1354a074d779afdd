package service

import (
	"context"
	"fmt"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/events"
	"github.com/guttosm/shipit-service/internal/logger"
	"github.com/guttosm/shipit-service/internal/repository"
)

// StockReceipt is a delivery of goods into a warehouse. When GCP is set every
// line must belong to that supplier.
type StockReceipt struct {
	WarehouseID int
	GCP         string
	Lines       []model.OrderLine
}

// StockReceiptService adds delivered goods to stock.
type StockReceiptService interface {
	Receive(ctx context.Context, receipt StockReceipt) error
}

// StockReceiver validates receipts and upserts held quantities.
type StockReceiver struct {
	store     repository.WarehouseStore
	validator *OrderValidator
	ledger    *StockLedger
	publisher events.Publisher
	audit     LoggingService
}

var _ StockReceiptService = (*StockReceiver)(nil)

// NewStockReceiver returns a receiver. publisher and audit may be nil.
func NewStockReceiver(store repository.WarehouseStore, publisher events.Publisher, audit LoggingService) *StockReceiver {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if audit == nil {
		audit = NewNopLoggingService()
	}
	return &StockReceiver{
		store:     store,
		validator: NewOrderValidator(),
		ledger:    NewStockLedger(),
		publisher: publisher,
		audit:     audit,
	}
}

// Receive rejects the whole receipt with *model.OrderRejectedError when any
// line is duplicated, unknown, non-positive or from another supplier.
func (r *StockReceiver) Receive(ctx context.Context, receipt StockReceipt) error {
	err := r.store.InWarehouse(ctx, receipt.WarehouseID, func(tx repository.WarehouseTx) error {
		lines, problems, err := r.validator.resolve(ctx, tx, receipt.Lines)
		if err != nil {
			return err
		}
		if receipt.GCP != "" {
			for _, l := range lines {
				if l.Product.GCP != receipt.GCP {
					problems = append(problems, &model.ValidationError{
						GTIN:   l.Product.GTIN,
						Reason: fmt.Sprintf("manifest gcp %s does not match gcp %s of product", receipt.GCP, l.Product.GCP),
					})
				}
			}
		}
		if len(problems) > 0 {
			return &model.OrderRejectedError{Errors: problems}
		}
		return r.ledger.Receive(ctx, tx, receipt.WarehouseID, lines)
	})
	if err != nil {
		return err
	}

	requestID := logger.RequestIDFromContext(ctx)
	l := logger.FromContext(ctx)

	event := events.New(events.TypeStockReceived, receipt.WarehouseID, requestID, events.StockReceived{Lines: receipt.Lines})
	if err := r.publisher.Publish(ctx, event); err != nil {
		l.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to publish stock receipt event")
	}

	entry := (&model.LogEntry{
		Level:       "info",
		Message:     "stock received",
		RequestID:   requestID,
		WarehouseID: receipt.WarehouseID,
		ActionType:  model.ActionStockReceipt,
	}).WithField("lines", len(receipt.Lines))
	if err := r.audit.CreateLog(ctx, entry); err != nil {
		l.Warn().Err(err).Msg("Failed to write stock receipt audit entry")
	}

	l.Info().Int("warehouse_id", receipt.WarehouseID).Int("lines", len(receipt.Lines)).Msg("Stock received")
	return nil
}
