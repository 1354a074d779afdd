//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestockQuantity(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		held    int
		want    int
		wantOK  bool
	}{
		{
			name:    "tops up to three thresholds",
			product: model.Product{LowerThreshold: 100, MinimumOrderQuantity: 10},
			held:    40,
			want:    260,
			wantOK:  true,
		},
		{
			name:    "minimum order quantity wins",
			product: model.Product{LowerThreshold: 50, MinimumOrderQuantity: 500},
			held:    10,
			want:    500,
			wantOK:  true,
		},
		{
			name:    "at threshold",
			product: model.Product{LowerThreshold: 50},
			held:    50,
		},
		{
			name:    "discontinued",
			product: model.Product{LowerThreshold: 50, Discontinued: true},
			held:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, ok := RestockQuantity(model.RestockCandidate{Product: tt.product, Held: tt.held})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, qty)
		})
	}
}

func TestRestockPlanner_Plan(t *testing.T) {
	s, products := newFixtureStore(t)
	s.SetStock(warehouse, products[gtinBowl].ID, 40)
	s.SetStock(warehouse, products[gtinLeash].ID, 10)
	s.SetStock(warehouse, products[gtinFeeder].ID, 5)

	manifest, err := NewRestockPlanner(s).Plan(context.Background(), warehouse)

	require.NoError(t, err)
	assert.Equal(t, warehouse, manifest.WarehouseID)
	require.Len(t, manifest.OrderSegments, 2)

	pets := manifest.OrderSegments[0]
	assert.Equal(t, "0000346", pets.Company.GCP)
	assert.Equal(t, "Pets Co", pets.Company.Name)
	assert.Equal(t, []model.InboundOrderLine{
		{GTIN: gtinBowl, Name: "Dog bowl", Quantity: 260},
		{GTIN: gtinLeash, Name: "Leash", Quantity: 500},
	}, pets.OrderLines)

	feeders := manifest.OrderSegments[1]
	assert.Equal(t, "0000999", feeders.Company.GCP)
	assert.Equal(t, []model.InboundOrderLine{{GTIN: gtinFeeder, Name: "Feeder", Quantity: 55}}, feeders.OrderLines)
}

func TestRestockPlanner_PlanNothingToOrder(t *testing.T) {
	s, _ := newFixtureStore(t)

	manifest, err := NewRestockPlanner(s).Plan(context.Background(), 99)

	require.NoError(t, err)
	assert.NotNil(t, manifest.OrderSegments)
	assert.Empty(t, manifest.OrderSegments)
}

type failingRestockReader struct{}

func (failingRestockReader) RestockCandidates(context.Context, int) ([]model.RestockCandidate, error) {
	return nil, errors.New("timeout")
}

func TestRestockPlanner_PlanError(t *testing.T) {
	_, err := NewRestockPlanner(failingRestockReader{}).Plan(context.Background(), 1)
	assert.ErrorContains(t, err, "timeout")
}
