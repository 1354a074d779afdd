//go:build !integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	products map[string]model.Product
	calls    int
}

func (c *countingCatalog) ProductByGTIN(_ context.Context, gtin string) (*model.Product, error) {
	c.calls++
	p, ok := c.products[gtin]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &p, nil
}

func TestCachedCatalog(t *testing.T) {
	next := &countingCatalog{products: map[string]model.Product{gtinBowl: {ID: 1, GTIN: gtinBowl}}}
	c := NewCachedCatalog(next, cache.NewSharded[model.Product]("catalog-test", 10, time.Minute, 2))
	defer c.Stop()
	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			p, err := c.ProductByGTIN(ctx, gtinBowl)
			require.NoError(t, err)
			assert.Equal(t, int64(1), p.ID)
		}
		assert.Equal(t, 1, next.calls)
	})

	t.Run("unknown gtins are not cached", func(t *testing.T) {
		before := next.calls
		for i := 0; i < 2; i++ {
			_, err := c.ProductByGTIN(ctx, "missing")
			assert.ErrorIs(t, err, model.ErrNotFound)
		}
		assert.Equal(t, before+2, next.calls)
	})

	t.Run("callers cannot mutate the cached product", func(t *testing.T) {
		p, err := c.ProductByGTIN(ctx, gtinBowl)
		require.NoError(t, err)
		p.Name = "changed"

		again, err := c.ProductByGTIN(ctx, gtinBowl)
		require.NoError(t, err)
		assert.Empty(t, again.Name)
	})
}
