package bundle_views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/fakes"
)

func TestGetAndList(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rm := fakes.NewReadModel()
	items := []domain.BundleItem{
		{ProductID: "p2", Position: 2, AddedAt: now},
		{ProductID: "p1", Position: 1, Mandatory: true, AddedAt: now},
	}
	rm.Bundles["b1"] = domain.ReconstructBundle("b1", "START", "Starter", "", domain.BundleStatusActive, items, now, now)
	rm.Bundles["b2"] = domain.ReconstructBundle("b2", "OLD", "Old", "", domain.BundleStatusRetired, nil, now, now)

	h := NewHandler(rm)

	b, err := h.Get(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, b.Items, 2)
	assert.Equal(t, "p1", b.Items[0].ProductID, "items are ordered by position")

	_, err = h.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBundleNotFound)

	active, err := h.List(context.Background(), "ACTIVE", 20, 0)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "b1", active[0].ID)

	_, err = h.List(context.Background(), "gone", 20, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
