package change_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/fakes"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/repo"
)

func TestLifecycleOfStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := fakes.NewHarness(now)
	p, err := domain.NewProduct("prod-1", domain.ProductDetails{
		Code: "chk", Name: "Checking", ProductType: "account", Category: "retail", Currency: "USD",
	}, now)
	require.NoError(t, err)
	p.ClearEvents()
	h.ReadModel.Products[p.ID()] = p

	it := NewInteractor(repo.NewProductRepo(), h.ReadModel, h.Writer)
	ctx := context.Background()

	_, err = it.Activate(ctx, "prod-1")
	require.NoError(t, err)
	_, err = it.Archive(ctx, "prod-1")
	assert.ErrorIs(t, err, domain.ErrCannotArchiveActiveProduct)
	_, err = it.Deactivate(ctx, "prod-1")
	require.NoError(t, err)
	archived, err := it.Archive(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductStatusArchived, archived.Status())

	assert.Equal(t, []string{"product.activated", "product.deactivated", "product.archived"}, h.Outbox.EventTypes())
	assert.Equal(t, 3, h.Committer.Calls())
	assert.Len(t, h.Cache.Invalidated, 3)

	_, err = it.Activate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
