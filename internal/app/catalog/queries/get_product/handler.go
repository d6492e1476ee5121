package get_product

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

// ReadModel is what the handler needs from the read side.
type ReadModel interface {
	contracts.ProductReader
	contracts.LocalizationReader
}

// ViewCache is optional; a nil cache reads straight from the read model.
type ViewCache interface {
	Get(ctx context.Context, productID, locale string) (*dto.ProductDTO, bool)
	Put(ctx context.Context, productID, locale string, v *dto.ProductDTO)
}

type Query struct {
	ProductID string
	// Locale replaces name and description with the matching localization
	// when one exists. Empty means no localization.
	Locale string
}

type Handler struct {
	readModel ReadModel
	cache     ViewCache
}

func NewHandler(r ReadModel, cache ViewCache) *Handler {
	return &Handler{readModel: r, cache: cache}
}

func (h *Handler) Execute(ctx context.Context, q Query) (*dto.ProductDTO, error) {
	locale := ""
	if q.Locale != "" {
		l, err := domain.NormalizeLocale(q.Locale)
		if err != nil {
			return nil, err
		}
		locale = l
	}

	if h.cache != nil {
		if v, ok := h.cache.Get(ctx, q.ProductID, locale); ok {
			return v, nil
		}
	}

	p, err := h.readModel.GetProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(p)

	if locale != "" {
		l, err := h.readModel.FindLocalization(ctx, q.ProductID, locale)
		if err != nil {
			return nil, err
		}
		out.Localize(l)
	}

	if h.cache != nil {
		h.cache.Put(ctx, q.ProductID, locale, out)
	}
	return out, nil
}
