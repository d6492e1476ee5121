// Package cache holds the Redis-backed product view cache.
package cache

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/pkg/viewcache"
)

const (
	keyPrefix = "product:"

	// defaultVariant is the hash field of the unlocalized view.
	defaultVariant = "_"
)

// ProductViews caches product DTOs, one hash per product and one field per locale.
type ProductViews struct {
	views *viewcache.ViewCache[dto.ProductDTO]
}

var _ contracts.ProductCache = (*ProductViews)(nil)

func NewProductViews(views *viewcache.ViewCache[dto.ProductDTO]) *ProductViews {
	return &ProductViews{views: views}
}

func Key(productID string) string { return keyPrefix + productID }

func variant(locale string) string {
	if locale == "" {
		return defaultVariant
	}
	return locale
}

func (c *ProductViews) Get(ctx context.Context, productID, locale string) (*dto.ProductDTO, bool) {
	return c.views.Get(ctx, Key(productID), variant(locale))
}

func (c *ProductViews) Put(ctx context.Context, productID, locale string, v *dto.ProductDTO) {
	c.views.Set(ctx, Key(productID), variant(locale), v)
}

// Invalidate drops every locale variant of the product.
func (c *ProductViews) Invalidate(ctx context.Context, productID string) {
	c.views.Delete(ctx, Key(productID))
}
