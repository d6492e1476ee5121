package get_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/fakes"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type memCache struct {
	entries map[string]*dto.ProductDTO
	gets    int
}

func (c *memCache) Get(_ context.Context, productID, locale string) (*dto.ProductDTO, bool) {
	c.gets++
	v, ok := c.entries[productID+"|"+locale]
	return v, ok
}

func (c *memCache) Put(_ context.Context, productID, locale string, v *dto.ProductDTO) {
	c.entries[productID+"|"+locale] = v
}

func seed(t *testing.T) *fakes.ReadModel {
	t.Helper()
	rm := fakes.NewReadModel()
	p, err := domain.NewProduct("prod-1", domain.ProductDetails{
		Code: "chk", Name: "Checking", ProductType: "account", Category: "retail", Currency: "USD",
	}, now)
	require.NoError(t, err)
	rm.Products[p.ID()] = p

	l, err := domain.NewLocalization("loc-1", "prod-1", domain.LocalizationInput{Locale: "de-DE", Name: "Girokonto"}, now)
	require.NoError(t, err)
	rm.Localizations[l.ID()] = l
	return rm
}

func TestExecute_Localized(t *testing.T) {
	h := NewHandler(seed(t), nil)

	out, err := h.Execute(context.Background(), Query{ProductID: "prod-1", Locale: "de_de"})
	require.NoError(t, err)
	assert.Equal(t, "Girokonto", out.Name)
	assert.Equal(t, "de-DE", out.Locale)

	out, err = h.Execute(context.Background(), Query{ProductID: "prod-1", Locale: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "Checking", out.Name, "missing localization falls back to the base text")
	assert.Empty(t, out.Locale)
}

func TestExecute_NotFound(t *testing.T) {
	h := NewHandler(seed(t), nil)
	_, err := h.Execute(context.Background(), Query{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestExecute_InvalidLocale(t *testing.T) {
	h := NewHandler(seed(t), nil)
	_, err := h.Execute(context.Background(), Query{ProductID: "prod-1", Locale: "??"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_UsesCache(t *testing.T) {
	rm := seed(t)
	cache := &memCache{entries: map[string]*dto.ProductDTO{}}
	h := NewHandler(rm, cache)

	first, err := h.Execute(context.Background(), Query{ProductID: "prod-1"})
	require.NoError(t, err)

	delete(rm.Products, "prod-1")
	second, err := h.Execute(context.Background(), Query{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cache.gets)
}
