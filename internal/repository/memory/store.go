// Package memory is an in-process fulfillment backend. It keeps the same
// all-or-nothing and per-warehouse serialization guarantees as the Postgres
// store and backs local runs and unit tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
)

type stockKey struct {
	warehouseID int
	productID   int64
}

// Store implements repository.Store.
type Store struct {
	mu        sync.RWMutex
	products  map[string]model.Product
	companies map[string]model.Company
	stock     map[stockKey]int
	nextID    int64

	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		products:  make(map[string]model.Product),
		companies: make(map[string]model.Company),
		stock:     make(map[stockKey]int),
		locks:     make(map[int]*sync.Mutex),
	}
}

// UpsertProducts adds or replaces catalog entries by gtin. Products without an
// ID get the next free one. The stored products are returned.
func (s *Store) UpsertProducts(products ...model.Product) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if existing, ok := s.products[p.GTIN]; ok && p.ID == 0 {
			p.ID = existing.ID
		}
		if p.ID == 0 {
			s.nextID++
			p.ID = s.nextID
		} else if p.ID > s.nextID {
			s.nextID = p.ID
		}
		s.products[p.GTIN] = p
		out = append(out, p)
	}
	return out
}

// UpsertCompanies adds or replaces suppliers by gcp.
func (s *Store) UpsertCompanies(companies ...model.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range companies {
		s.companies[c.GCP] = c
	}
}

// SetStock overwrites a held quantity, creating the record if needed.
func (s *Store) SetStock(warehouseID int, productID int64, held int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[stockKey{warehouseID, productID}] = held
}

// Held returns the committed held quantity.
func (s *Store) Held(warehouseID int, productID int64) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	held, ok := s.stock[stockKey{warehouseID, productID}]
	return held, ok
}

// ProductByGTIN implements repository.CatalogReader.
func (s *Store) ProductByGTIN(_ context.Context, gtin string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[gtin]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &p, nil
}

// RestockCandidates lists products stocked at the warehouse ordered by product id.
func (s *Store) RestockCandidates(_ context.Context, warehouseID int) ([]model.RestockCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.RestockCandidate
	for _, p := range s.products {
		held, ok := s.stock[stockKey{warehouseID, p.ID}]
		if !ok {
			continue
		}
		company, ok := s.companies[p.GCP]
		if !ok {
			company = model.Company{GCP: p.GCP}
		}
		out = append(out, model.RestockCandidate{Product: p, Company: company, Held: held})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out, nil
}

func (s *Store) warehouseLock(warehouseID int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[warehouseID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[warehouseID] = l
	}
	return l
}

// InWarehouse implements repository.WarehouseStore. Stock writes made by fn are
// staged and only published when fn returns nil.
func (s *Store) InWarehouse(ctx context.Context, warehouseID int, fn func(tx repository.WarehouseTx) error) error {
	lock := s.warehouseLock(warehouseID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &warehouseTx{store: s, warehouseID: warehouseID, staged: make(map[int64]int)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for productID, held := range tx.staged {
		s.stock[stockKey{warehouseID, productID}] = held
	}
	return nil
}

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

type warehouseTx struct {
	store       *Store
	warehouseID int
	staged      map[int64]int
}

func (tx *warehouseTx) checkWarehouse(warehouseID int) error {
	if warehouseID != tx.warehouseID {
		return fmt.Errorf("unit of work is bound to warehouse %d, got %d", tx.warehouseID, warehouseID)
	}
	return nil
}

func (tx *warehouseTx) ProductByGTIN(ctx context.Context, gtin string) (*model.Product, error) {
	return tx.store.ProductByGTIN(ctx, gtin)
}

func (tx *warehouseTx) HeldQuantity(_ context.Context, warehouseID int, productID int64) (int, bool, error) {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return 0, false, err
	}
	held, ok := tx.current(productID)
	return held, ok, nil
}

func (tx *warehouseTx) current(productID int64) (int, bool) {
	if held, ok := tx.staged[productID]; ok {
		return held, true
	}
	return tx.store.Held(tx.warehouseID, productID)
}

func (tx *warehouseTx) DecrementStock(_ context.Context, warehouseID int, alterations []model.StockAlteration) error {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return err
	}

	next := make(map[int64]int, len(alterations))
	for _, a := range alterations {
		held, ok := next[a.ProductID]
		if !ok {
			held, ok = tx.current(a.ProductID)
		}
		if !ok {
			return &model.ConsistencyError{WarehouseID: warehouseID, ProductID: a.ProductID, RowsAffected: 0, Detail: "no stock record"}
		}
		if held < a.Quantity {
			return &model.ConsistencyError{WarehouseID: warehouseID, ProductID: a.ProductID, RowsAffected: 0, Detail: "held quantity would go negative"}
		}
		next[a.ProductID] = held - a.Quantity
	}
	for productID, held := range next {
		tx.staged[productID] = held
	}
	return nil
}

func (tx *warehouseTx) AddStock(_ context.Context, warehouseID int, alterations []model.StockAlteration) error {
	if err := tx.checkWarehouse(warehouseID); err != nil {
		return err
	}
	for _, a := range alterations {
		held, _ := tx.current(a.ProductID)
		tx.staged[a.ProductID] = held + a.Quantity
	}
	return nil
}
