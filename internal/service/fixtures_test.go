//go:build !integration

package service

import (
	"context"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/repository/memory"
	"github.com/shopspring/decimal"
)

const (
	gtinBowl   = "0000346374230"
	gtinLeash  = "0000346374247"
	gtinCrate  = "0000346374254"
	gtinFeeder = "0000999000001"
	warehouse  = 1
)

// newFixtureStore seeds three 300 g, 300 g and 50 kg products at warehouse 1.
func newFixtureStore(t *testing.T) (*memory.Store, map[string]model.Product) {
	t.Helper()
	s := memory.New()
	s.UpsertCompanies(
		model.Company{GCP: "0000346", Name: "Pets Co"},
		model.Company{GCP: "0000999", Name: "Feeders Ltd"},
	)
	stored := s.UpsertProducts(
		model.Product{GTIN: gtinBowl, GCP: "0000346", Name: "Dog bowl", WeightGrams: decimal.NewFromInt(300), LowerThreshold: 100, MinimumOrderQuantity: 10},
		model.Product{GTIN: gtinLeash, GCP: "0000346", Name: "Leash", WeightGrams: decimal.NewFromInt(300), LowerThreshold: 50, MinimumOrderQuantity: 500},
		model.Product{GTIN: gtinCrate, GCP: "0000346", Name: "Crate", WeightGrams: decimal.NewFromInt(50000), LowerThreshold: 5, Discontinued: true},
		model.Product{GTIN: gtinFeeder, GCP: "0000999", Name: "Feeder", WeightGrams: decimal.NewFromInt(1200), LowerThreshold: 20},
	)
	products := make(map[string]model.Product, len(stored))
	for _, p := range stored {
		products[p.GTIN] = p
	}
	s.SetStock(warehouse, products[gtinBowl].ID, 20000)
	s.SetStock(warehouse, products[gtinLeash].ID, 1000)
	s.SetStock(warehouse, products[gtinCrate].ID, 1)
	return s, products
}

func heldAt(t *testing.T, s *memory.Store, p model.Product) int {
	t.Helper()
	held, _ := s.Held(warehouse, p.ID)
	return held
}

// failingStore returns err from every unit of work.
type failingStore struct{ err error }

func (f failingStore) InWarehouse(context.Context, int, func(repository.WarehouseTx) error) error {
	return f.err
}
