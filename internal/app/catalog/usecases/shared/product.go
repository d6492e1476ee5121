package shared

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// LoadMutableProduct loads the parent product of a child entity and rejects
// archived products.
func LoadMutableProduct(ctx context.Context, r contracts.ProductReader, productID string) (*domain.Product, error) {
	p, err := r.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureMutable(); err != nil {
		return nil, err
	}
	return p, nil
}
