package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validDetails() ProductDetails {
	return ProductDetails{
		Code:        " chk-basic ",
		Name:        "  Basic Checking ",
		ProductType: "Account",
		Category:    "retail",
		Currency:    "usd",
	}
}

func TestNewProduct_Normalizes(t *testing.T) {
	p, err := NewProduct("prod-1", validDetails(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "CHK-BASIC", p.Code())
	assert.Equal(t, "Basic Checking", p.Name())
	assert.Equal(t, ProductTypeAccount, p.ProductType())
	assert.Equal(t, "USD", p.Currency())
	assert.Equal(t, ProductStatusDraft, p.Status())

	require.Len(t, p.DomainEvents(), 1)
	assert.Equal(t, "product.created", p.DomainEvents()[0].EventType())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductDetails)
		want   error
	}{
		{"missing code", func(d *ProductDetails) { d.Code = "" }, ErrValidation},
		{"code with space", func(d *ProductDetails) { d.Code = "a b" }, ErrValidation},
		{"missing name", func(d *ProductDetails) { d.Name = "  " }, ErrValidation},
		{"unknown type", func(d *ProductDetails) { d.ProductType = "crypto" }, ErrValidation},
		{"missing category", func(d *ProductDetails) { d.Category = "" }, ErrValidation},
		{"bad currency", func(d *ProductDetails) { d.Currency = "XYZW" }, ErrInvalidCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := NewProduct("prod-1", d, testNow)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProduct_UpdateDetails_TracksDirtyFields(t *testing.T) {
	p, err := NewProduct("prod-1", validDetails(), testNow)
	require.NoError(t, err)
	p.ClearEvents()

	same := "Basic Checking"
	name := "Premium Checking"
	later := testNow.Add(time.Hour)
	require.NoError(t, p.UpdateDetails(ProductPatch{Name: &same}, later))
	assert.False(t, p.Changes().HasChanges(), "unchanged value is not dirty")
	assert.Empty(t, p.DomainEvents())

	require.NoError(t, p.UpdateDetails(ProductPatch{Name: &name}, later))
	assert.Equal(t, []string{FieldName}, p.Changes().DirtyFields())
	assert.Equal(t, later, p.UpdatedAt())
	require.Len(t, p.DomainEvents(), 1)
	assert.Equal(t, "product.updated", p.DomainEvents()[0].EventType())
}

func TestProduct_StatusTransitions(t *testing.T) {
	p, err := NewProduct("prod-1", validDetails(), testNow)
	require.NoError(t, err)

	require.NoError(t, p.Activate(testNow))
	assert.ErrorIs(t, p.Activate(testNow), ErrProductAlreadyActive)
	assert.ErrorIs(t, p.Archive(testNow), ErrCannotArchiveActiveProduct)

	require.NoError(t, p.Deactivate(testNow))
	assert.ErrorIs(t, p.Deactivate(testNow), ErrProductAlreadyInactive)

	require.NoError(t, p.Archive(testNow))
	require.NotNil(t, p.ArchivedAt())
	assert.ErrorIs(t, p.Activate(testNow), ErrProductArchived)
	assert.ErrorIs(t, p.EnsureMutable(), ErrProductArchived)
	assert.ErrorIs(t, p.Archive(testNow), ErrConflict)
}

func TestParseProductStatus(t *testing.T) {
	st, err := ParseProductStatus(" Active ")
	require.NoError(t, err)
	assert.Equal(t, ProductStatusActive, st)

	_, err = ParseProductStatus("deleted")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewProduct_MultibyteLengths(t *testing.T) {
	d := validDetails()
	d.Name = strings.Repeat("ü", 255)
	d.Description = strings.Repeat("é", 4000)
	d.Category = strings.Repeat("銀", 100)
	p, err := NewProduct("prod-1", d, testNow)
	require.NoError(t, err)
	assert.Equal(t, d.Category, p.Category())

	d.Name = strings.Repeat("ü", 256)
	_, err = NewProduct("prod-2", d, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}
