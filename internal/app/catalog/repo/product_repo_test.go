package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_product"
)

func newTestProduct(t *testing.T, now time.Time) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("prod-1", domain.ProductDetails{
		Code:        "chk-basic",
		Name:        "Basic Checking",
		ProductType: "account",
		Category:    "retail",
		Currency:    "usd",
	}, now)
	require.NoError(t, err)
	return p
}

func TestBuildProductInsertValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := newTestProduct(t, now)

	values := buildProductInsertValues(p)

	assert.Equal(t, "prod-1", values[m_product.ColProductID])
	assert.Equal(t, "CHK-BASIC", values[m_product.ColCode])
	assert.Equal(t, "USD", values[m_product.ColCurrency])
	assert.Equal(t, "draft", values[m_product.ColStatus])
	assert.Equal(t, now, values[m_product.ColCreatedAt])

	// Optional columns are present and NULL.
	v, ok := values[m_product.ColDescription]
	require.True(t, ok, "description missing in insert values")
	assert.Nil(t, v)
	v, ok = values[m_product.ColArchivedAt]
	require.True(t, ok, "archived_at missing in insert values")
	assert.Nil(t, v)

	require.NotNil(t, NewProductRepo().InsertMut(p))
}

func TestBuildProductUpdateValues_OnlyDirtyFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := newTestProduct(t, now)
	p.Changes().Clear()

	assert.Nil(t, buildProductUpdateValues(p))
	assert.Nil(t, NewProductRepo().UpdateMut(p))

	later := now.Add(time.Hour)
	name := "Premium Checking"
	require.NoError(t, p.UpdateDetails(domain.ProductPatch{Name: &name}, later))

	updates := buildProductUpdateValues(p)
	require.Len(t, updates, 2)
	assert.Equal(t, name, updates[m_product.ColName])
	assert.Equal(t, later, updates[m_product.ColUpdatedAt])
}

func TestBuildProductUpdateValues_Archive(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := newTestProduct(t, now)
	p.Changes().Clear()

	require.NoError(t, p.Archive(now))

	updates := buildProductUpdateValues(p)
	assert.Equal(t, "archived", updates[m_product.ColStatus])
	assert.Equal(t, now, updates[m_product.ColArchivedAt])
}
