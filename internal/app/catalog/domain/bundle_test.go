package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := NewBundle("bun-1", BundleInput{Code: "starter", Name: "Starter pack"}, testNow)
	require.NoError(t, err)
	return b
}

func productWithID(t *testing.T, id string) *Product {
	t.Helper()
	d := validDetails()
	d.Code = id
	p, err := NewProduct(id, d, testNow)
	require.NoError(t, err)
	return p
}

func TestBundle_AddItem(t *testing.T) {
	b := newTestBundle(t)
	assert.Equal(t, "STARTER", b.Code())

	first, err := b.AddItem(productWithID(t, "p1"), true, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Position)

	second, err := b.AddItem(productWithID(t, "p2"), false, 0, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Position, "zero position appends")

	front, err := b.AddItem(productWithID(t, "p0"), false, 1, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), front.Position)

	_, err = b.AddItem(productWithID(t, "p1"), false, 0, testNow)
	assert.ErrorIs(t, err, ErrBundleItemDuplicate)

	_, err = b.AddItem(nil, false, 0, testNow)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Len(t, b.Items(), 3)
	assert.True(t, b.Changes().Dirty(FieldItems))
}

func TestBundle_AddItem_ArchivedProduct(t *testing.T) {
	b := newTestBundle(t)
	p := productWithID(t, "p1")
	require.NoError(t, p.Archive(testNow))

	_, err := b.AddItem(p, false, 0, testNow)
	assert.ErrorIs(t, err, ErrBundleProductArchived)
}

func TestBundle_RemoveItem(t *testing.T) {
	b := newTestBundle(t)
	_, err := b.AddItem(productWithID(t, "p1"), false, 0, testNow)
	require.NoError(t, err)

	require.NoError(t, b.RemoveItem("p1", testNow))
	assert.Empty(t, b.Items())
	assert.ErrorIs(t, b.RemoveItem("p1", testNow), ErrBundleItemNotFound)
}

func TestBundle_RetiredIsFrozen(t *testing.T) {
	b := newTestBundle(t)
	retired := "retired"
	require.NoError(t, b.Update(BundlePatch{Status: &retired}, testNow))

	name := "Other"
	assert.ErrorIs(t, b.Update(BundlePatch{Name: &name}, testNow), ErrBundleRetired)
	_, err := b.AddItem(productWithID(t, "p1"), false, 0, testNow)
	assert.ErrorIs(t, err, ErrBundleRetired)
}
