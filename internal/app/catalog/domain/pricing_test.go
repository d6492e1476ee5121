package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRate(t *testing.T, s string) *Rate {
	t.Helper()
	r, err := ParseRate(s)
	require.NoError(t, err)
	return r
}

func fixedPricing(t *testing.T) *Pricing {
	t.Helper()
	p, err := NewPricing("pr-1", "prod-1", PricingInput{
		Name:          "monthly",
		PricingType:   "fixed",
		Amount:        MustMoney(1000, 100),
		EffectiveFrom: testNow.Add(-24 * time.Hour),
	}, testNow)
	require.NoError(t, err)
	return p
}

func activeProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("prod-1", validDetails(), testNow)
	require.NoError(t, err)
	require.NoError(t, p.Activate(testNow))
	return p
}

func TestNewPricing_ValueMustMatchType(t *testing.T) {
	_, err := NewPricing("pr-1", "prod-1", PricingInput{
		Name:          "apr",
		PricingType:   "fixed",
		Rate:          mustRate(t, "3.5"),
		EffectiveFrom: testNow,
	}, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewPricing("pr-1", "prod-1", PricingInput{
		Name:          "apr",
		PricingType:   "rate",
		Rate:          mustRate(t, "-1"),
		EffectiveFrom: testNow,
	}, testNow)
	assert.ErrorIs(t, err, ErrNegativeRate)

	to := testNow.Add(-time.Hour)
	_, err = NewPricing("pr-1", "prod-1", PricingInput{
		Name:          "monthly",
		PricingType:   "fixed",
		Amount:        MustMoney(5, 1),
		EffectiveFrom: testNow,
		EffectiveTo:   &to,
	}, testNow)
	assert.ErrorIs(t, err, ErrInvalidEffectivePeriod)
}

func TestPricing_ApplyDiscount(t *testing.T) {
	p := fixedPricing(t)
	d, err := NewDiscount(mustRate(t, "20"), testNow.Add(-time.Hour), testNow.Add(time.Hour))
	require.NoError(t, err)

	draft, err := NewProduct("prod-1", validDetails(), testNow)
	require.NoError(t, err)
	assert.ErrorIs(t, p.ApplyDiscount(draft, d, testNow), ErrProductNotActive)

	require.NoError(t, p.ApplyDiscount(activeProduct(t), d, testNow))
	assert.Equal(t, "8.00", p.EffectiveAmount(testNow).String())
	assert.Equal(t, "10.00", p.EffectiveAmount(testNow.Add(2*time.Hour)).String(), "expired discount is ignored")
	assert.ErrorIs(t, p.ApplyDiscount(activeProduct(t), d, testNow), ErrDiscountAlreadyExists)

	p.RemoveDiscount(testNow)
	assert.Nil(t, p.Discount())
	assert.Equal(t, "10.00", p.EffectiveAmount(testNow).String())
}

func TestPricing_ApplyDiscount_NotYetValid(t *testing.T) {
	p := fixedPricing(t)
	d, err := NewDiscount(mustRate(t, "10"), testNow.Add(time.Hour), testNow.Add(2*time.Hour))
	require.NoError(t, err)
	assert.ErrorIs(t, p.ApplyDiscount(activeProduct(t), d, testNow), ErrDiscountNotValid)
}

func TestNewDiscount_Validation(t *testing.T) {
	_, err := NewDiscount(mustRate(t, "101"), testNow, testNow.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidDiscountPercentage)

	_, err = NewDiscount(mustRate(t, "10"), testNow, testNow)
	assert.ErrorIs(t, err, ErrInvalidDiscountPeriod)
}

func TestPricing_Update_ClearEffectiveTo(t *testing.T) {
	to := testNow.Add(48 * time.Hour)
	p, err := NewPricing("pr-1", "prod-1", PricingInput{
		Name:          "monthly",
		PricingType:   "fixed",
		Amount:        MustMoney(1000, 100),
		EffectiveFrom: testNow,
		EffectiveTo:   &to,
	}, testNow)
	require.NoError(t, err)

	require.NoError(t, p.Update(PricingPatch{ClearEffectiveTo: true}, testNow))
	assert.Nil(t, p.Period().To)
	assert.True(t, p.Changes().Dirty(FieldEffectiveTo))
}

func TestPeriod(t *testing.T) {
	end := testNow.Add(time.Hour)
	p := Period{From: testNow, To: &end}

	assert.True(t, p.Contains(testNow))
	assert.False(t, p.Contains(end), "upper bound is exclusive")

	next := Period{From: end}
	assert.False(t, p.Overlaps(next))
	assert.True(t, next.Overlaps(Period{From: end.Add(time.Hour)}), "open-ended windows overlap")
}
