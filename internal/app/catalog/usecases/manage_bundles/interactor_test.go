package manage_bundles

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

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*fakes.Harness, *Interactor) {
	t.Helper()
	h := fakes.NewHarness(now)
	for _, id := range []string{"chk", "sav", "card"} {
		p, err := domain.NewProduct(id, domain.ProductDetails{
			Code: id, Name: id, ProductType: "account", Category: "retail", Currency: "USD",
		}, now)
		require.NoError(t, err)
		h.ReadModel.Products[id] = p
	}
	return h, NewInteractor(repo.NewBundleRepo(), h.ReadModel, h.Writer)
}

func TestCreate_WithItems(t *testing.T) {
	h, it := setup(t)

	b, err := it.Create(context.Background(), CreateRequest{
		BundleInput: domain.BundleInput{Code: "starter", Name: "Starter"},
		Items:       []ItemRequest{{ProductID: "chk", Mandatory: true}, {ProductID: "sav"}},
	})
	require.NoError(t, err)
	require.Len(t, b.Items(), 2)

	assert.Equal(t, 1, h.Committer.Calls())
	// bundle row, two items, one outbox row per event (created + two item_added)
	assert.Equal(t, 6, h.Committer.LastPlan().Len())
	assert.Equal(t, []string{"bundle.created", "bundle.item_added", "bundle.item_added"}, h.Outbox.EventTypes())
	assert.Empty(t, h.Cache.Invalidated)
}

func TestCreate_UnknownProductAbortsEverything(t *testing.T) {
	h, it := setup(t)
	_, err := it.Create(context.Background(), CreateRequest{
		BundleInput: domain.BundleInput{Code: "starter", Name: "Starter"},
		Items:       []ItemRequest{{ProductID: "chk"}, {ProductID: "ghost"}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Zero(t, h.Committer.Calls())
}

func TestItems(t *testing.T) {
	h, it := setup(t)
	ctx := context.Background()

	b, err := it.Create(ctx, CreateRequest{BundleInput: domain.BundleInput{Code: "duo", Name: "Duo"}})
	require.NoError(t, err)
	h.ReadModel.Bundles[b.ID()] = b

	_, err = it.AddItem(ctx, b.ID(), ItemRequest{ProductID: "card"})
	require.NoError(t, err)
	_, err = it.AddItem(ctx, b.ID(), ItemRequest{ProductID: "card"})
	assert.ErrorIs(t, err, domain.ErrBundleItemDuplicate)

	got, err := it.RemoveItem(ctx, b.ID(), "card")
	require.NoError(t, err)
	assert.Empty(t, got.Items())
	_, err = it.RemoveItem(ctx, b.ID(), "card")
	assert.ErrorIs(t, err, domain.ErrBundleItemNotFound)

	require.NoError(t, it.Delete(ctx, b.ID()))
	assert.Equal(t, []string{"bundle.created", "bundle.item_added", "bundle.item_removed", "bundle.deleted"}, h.Outbox.EventTypes())

	assert.ErrorIs(t, it.Delete(ctx, "ghost"), domain.ErrBundleNotFound)
}
