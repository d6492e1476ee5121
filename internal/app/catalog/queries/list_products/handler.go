package list_products

import (
	"context"
	"strings"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

type Query struct {
	Status      string
	Category    string
	ProductType string
	Limit       int
	Offset      int
}

type Handler struct {
	readModel contracts.ProductReader
}

func NewHandler(r contracts.ProductReader) *Handler {
	return &Handler{readModel: r}
}

// Execute lists products ordered by name. Status and product type filters
// are validated so a typo does not silently return an empty page.
func (h *Handler) Execute(ctx context.Context, q Query) ([]*dto.ProductDTO, error) {
	f := contracts.ProductFilter{Category: strings.TrimSpace(q.Category)}
	if q.Status != "" {
		st, err := domain.ParseProductStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(st)
	}
	if q.ProductType != "" {
		pt, err := domain.ParseProductType(q.ProductType)
		if err != nil {
			return nil, err
		}
		f.ProductType = string(pt)
	}

	products, err := h.readModel.ListProducts(ctx, f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}
