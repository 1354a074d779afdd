//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, s *memory.Store, lines []model.OrderLine) ([]model.ValidatedLine, error) {
	t.Helper()
	var out []model.ValidatedLine
	err := s.InWarehouse(context.Background(), warehouse, func(tx repository.WarehouseTx) error {
		var err error
		out, err = NewOrderValidator().Validate(context.Background(), tx, tx, warehouse, lines)
		return err
	})
	return out, err
}

func rejection(t *testing.T, err error) []error {
	t.Helper()
	var rejected *model.OrderRejectedError
	require.ErrorAs(t, err, &rejected)
	return rejected.Errors
}

func TestOrderValidator_Validate(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.OrderLine
		check func(t *testing.T, problems []error)
	}{
		{
			name:  "empty order",
			lines: nil,
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 1)
				var v *model.ValidationError
				assert.ErrorAs(t, problems[0], &v)
			},
		},
		{
			name: "duplicate gtin reported once regardless of quantity",
			lines: []model.OrderLine{
				{GTIN: gtinBowl, Quantity: 1},
				{GTIN: gtinBowl, Quantity: 1},
				{GTIN: gtinBowl, Quantity: -4},
			},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 1)
				var v *model.ValidationError
				require.ErrorAs(t, problems[0], &v)
				assert.Equal(t, gtinBowl, v.GTIN)
				assert.Contains(t, v.Error(), "duplicate")
			},
		},
		{
			name: "duplicated gtins are still resolved and stock checked",
			lines: []model.OrderLine{
				{GTIN: "nope", Quantity: 1},
				{GTIN: "nope", Quantity: 2},
				{GTIN: gtinBowl, Quantity: 999999},
				{GTIN: gtinBowl, Quantity: 1},
			},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 4)
				var v *model.ValidationError
				require.ErrorAs(t, problems[0], &v)
				assert.Equal(t, "nope", v.GTIN)
				var nf *model.NotFoundError
				require.ErrorAs(t, problems[1], &nf)
				assert.Equal(t, "nope", nf.GTIN)
				require.ErrorAs(t, problems[2], &v)
				assert.Equal(t, gtinBowl, v.GTIN)
				var ins *model.InsufficientStockError
				require.ErrorAs(t, problems[3], &ins)
				assert.Equal(t, 999999, ins.Requested)
				assert.Equal(t, 20000, ins.Available)
			},
		},
		{
			name: "unknown gtin alongside a valid line",
			lines: []model.OrderLine{
				{GTIN: gtinBowl, Quantity: 1},
				{GTIN: "9999999999999", Quantity: 1},
			},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 1)
				var nf *model.NotFoundError
				require.ErrorAs(t, problems[0], &nf)
				assert.Equal(t, "9999999999999", nf.GTIN)
			},
		},
		{
			name:  "insufficient stock carries requested and available",
			lines: []model.OrderLine{{GTIN: gtinLeash, Quantity: 1001}},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 1)
				var ins *model.InsufficientStockError
				require.ErrorAs(t, problems[0], &ins)
				assert.Equal(t, 1001, ins.Requested)
				assert.Equal(t, 1000, ins.Available)
				assert.Contains(t, ins.Error(), "insufficient stock")
			},
		},
		{
			name:  "no stock record",
			lines: []model.OrderLine{{GTIN: gtinFeeder, Quantity: 1}},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 1)
				var ins *model.InsufficientStockError
				require.ErrorAs(t, problems[0], &ins)
				assert.False(t, ins.Held)
				assert.Contains(t, ins.Error(), "no stock held")
			},
		},
		{
			name: "non-positive quantity and blank gtin",
			lines: []model.OrderLine{
				{GTIN: gtinBowl, Quantity: 0},
				{GTIN: " ", Quantity: 3},
			},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 2)
				assert.Equal(t, gtinBowl, model.Subject(problems[0]))
				assert.Equal(t, "", model.Subject(problems[1]))
			},
		},
		{
			name: "every problem is collected",
			lines: []model.OrderLine{
				{GTIN: gtinLeash, Quantity: 5000},
				{GTIN: "unknown", Quantity: 1},
				{GTIN: gtinBowl, Quantity: 1},
				{GTIN: gtinBowl, Quantity: 2},
				{GTIN: gtinFeeder, Quantity: 1},
			},
			check: func(t *testing.T, problems []error) {
				require.Len(t, problems, 4)
				subjects := make([]string, len(problems))
				for i, p := range problems {
					subjects[i] = model.Subject(p)
				}
				assert.ElementsMatch(t, []string{gtinLeash, "unknown", gtinBowl, gtinFeeder}, subjects)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFixtureStore(t)

			lines, err := validate(t, s, tt.lines)

			assert.Nil(t, lines)
			tt.check(t, rejection(t, err))
		})
	}
}

func TestOrderValidator_ValidateSuccess(t *testing.T) {
	s, products := newFixtureStore(t)

	lines, err := validate(t, s, []model.OrderLine{
		{GTIN: gtinBowl, Quantity: 20000},
		{GTIN: gtinLeash, Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, products[gtinBowl].ID, lines[0].Product.ID)
	assert.Equal(t, 20000, lines[0].Quantity)
	assert.Equal(t, products[gtinLeash].GCP, lines[1].Product.GCP)
}

type brokenCatalog struct{}

func (brokenCatalog) ProductByGTIN(context.Context, string) (*model.Product, error) {
	return nil, errors.New("connection reset")
}

func TestOrderValidator_InfrastructureError(t *testing.T) {
	_, err := NewOrderValidator().ValidateLines(context.Background(), brokenCatalog{}, []model.OrderLine{{GTIN: gtinBowl, Quantity: 1}})

	require.Error(t, err)
	var rejected *model.OrderRejectedError
	assert.False(t, errors.As(err, &rejected))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestOrderValidator_ValidateLinesIgnoresStock(t *testing.T) {
	s, _ := newFixtureStore(t)

	lines, err := NewOrderValidator().ValidateLines(context.Background(), s, []model.OrderLine{{GTIN: gtinFeeder, Quantity: 99999}})

	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
