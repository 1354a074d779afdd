package service

import (
	"context"

	"github.com/guttosm/shipit-service/internal/domain/model"
	"github.com/guttosm/shipit-service/internal/repository"
	"github.com/guttosm/shipit-service/internal/service/cache"
)

// CachedCatalog serves product lookups from a cache and falls back to the
// underlying catalog. Unknown gtins are not cached.
type CachedCatalog struct {
	next  repository.CatalogReader
	cache cache.Cache[model.Product]
}

var _ repository.CatalogReader = (*CachedCatalog)(nil)

// NewCachedCatalog wraps next with c.
func NewCachedCatalog(next repository.CatalogReader, c cache.Cache[model.Product]) *CachedCatalog {
	return &CachedCatalog{next: next, cache: c}
}

func (c *CachedCatalog) ProductByGTIN(ctx context.Context, gtin string) (*model.Product, error) {
	if p, ok := c.cache.Get(gtin); ok {
		return &p, nil
	}
	p, err := c.next.ProductByGTIN(ctx, gtin)
	if err != nil {
		return nil, err
	}
	c.cache.Set(gtin, *p)
	return p, nil
}

// Stop releases the cache.
func (c *CachedCatalog) Stop() {
	c.cache.Stop()
}
