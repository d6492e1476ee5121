package bundle_views

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

type Handler struct {
	readModel contracts.BundleReader
}

func NewHandler(r contracts.BundleReader) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Get(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	b, err := h.readModel.GetBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	return dto.FromBundle(b), nil
}

// List filters by status when one is given.
func (h *Handler) List(ctx context.Context, status string, limit, offset int) ([]*dto.BundleDTO, error) {
	if status != "" {
		st, err := domain.ParseBundleStatus(status)
		if err != nil {
			return nil, err
		}
		status = string(st)
	}
	bundles, err := h.readModel.ListBundles(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BundleDTO, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, dto.FromBundle(b))
	}
	return out, nil
}
