// Package repository defines the storage contracts of the fulfillment service
// and their MongoDB implementations.
package repository

import (
	"context"

	"github.com/guttosm/shipit-service/internal/domain/model"
)

// CatalogReader resolves gtins to products.
// ProductByGTIN returns model.ErrNotFound when the gtin is unknown.
type CatalogReader interface {
	ProductByGTIN(ctx context.Context, gtin string) (*model.Product, error)
}

// StockReader reads held quantities. found is false when the warehouse has no
// stock record for the product.
type StockReader interface {
	HeldQuantity(ctx context.Context, warehouseID int, productID int64) (held int, found bool, err error)
}

// StockWriter mutates held quantities.
type StockWriter interface {
	// DecrementStock removes every alteration or none. A decrement that does
	// not hit exactly one record returns *model.ConsistencyError.
	DecrementStock(ctx context.Context, warehouseID int, alterations []model.StockAlteration) error
	// AddStock upserts held quantities.
	AddStock(ctx context.Context, warehouseID int, alterations []model.StockAlteration) error
}

// WarehouseTx is the set of collaborators visible inside one warehouse unit of work.
type WarehouseTx interface {
	CatalogReader
	StockReader
	StockWriter
}

// WarehouseStore serializes units of work per warehouse. fn runs while no other
// unit of work for the same warehouse runs; an error from fn discards every
// mutation it made.
type WarehouseStore interface {
	InWarehouse(ctx context.Context, warehouseID int, fn func(tx WarehouseTx) error) error
}

// RestockReader lists the products of a warehouse with their supplier and held quantity.
type RestockReader interface {
	RestockCandidates(ctx context.Context, warehouseID int) ([]model.RestockCandidate, error)
}

// Store is everything a fulfillment backend provides.
type Store interface {
	CatalogReader
	WarehouseStore
	RestockReader
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// LogsRepositoryInterface persists request and audit log entries.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
