package services

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testProduct(t *testing.T) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct("prod-1", domain.ProductDetails{
		Code: "chk", Name: "Checking", ProductType: "account", Category: "retail", Currency: "EUR",
	}, now)
	require.NoError(t, err)
	require.NoError(t, p.Activate(now))
	return p
}

func schedule(t *testing.T, from time.Time) FeeSchedule {
	t.Helper()
	fs, err := domain.NewFeeStructure("fs-1", "prod-1", domain.FeeStructureInput{Name: "standard", EffectiveFrom: from}, now)
	require.NoError(t, err)

	monthly, err := domain.NewFeeComponent("fc-monthly", "prod-1", "fs-1", domain.FeeComponentInput{
		Name: "monthly", FeeType: "flat", Amount: domain.MustMoney(5, 1), Frequency: "monthly",
	}, now)
	require.NoError(t, err)
	rate, err := domain.ParseRate("2")
	require.NoError(t, err)
	fx, err := domain.NewFeeComponent("fc-fx", "prod-1", "fs-1", domain.FeeComponentInput{
		Name: "fx", FeeType: "percentage", Rate: rate, Frequency: "per_transaction",
	}, now)
	require.NoError(t, err)

	waive, err := domain.NewFeeRule("r-waive", "prod-1", "fs-1", "fc-monthly", domain.FeeRuleInput{
		Name: "premium balance", Attribute: "balance", Operator: "gte", Value: "5000", Action: "waive", Priority: 2,
	}, now)
	require.NoError(t, err)
	half, err := domain.NewFeeRule("r-half", "prod-1", "fs-1", "fc-monthly", domain.FeeRuleInput{
		Name: "online", Attribute: "channel", Operator: "eq", Value: "online", Action: "discount",
		ActionValue: big.NewRat(50, 1), Priority: 1,
	}, now)
	require.NoError(t, err)

	return FeeSchedule{
		Structure: fs,
		Components: []ComponentRules{
			{Component: monthly, Rules: []*domain.FeeRule{waive, half}},
			{Component: fx},
		},
	}
}

func TestQuote_FeesAndRules(t *testing.T) {
	qc := NewQuoteCalculator()
	s := schedule(t, now.Add(-time.Hour))

	tests := []struct {
		name    string
		attrs   map[string]string
		monthly string
		total   string
		ruleID  string
	}{
		{"no rule", map[string]string{"amount": "100"}, "5.00", "7.00", ""},
		{"waived", map[string]string{"amount": "100", "balance": "6000"}, "0.00", "2.00", "r-waive"},
		{"lowest priority wins", map[string]string{"amount": "100", "balance": "6000", "channel": "online"}, "2.50", "4.50", "r-half"},
		{"no amount", map[string]string{}, "5.00", "5.00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := qc.Quote(testProduct(t), nil, []FeeSchedule{s}, tt.attrs, now)
			require.NoError(t, err)
			require.Len(t, q.Fees, 2)

			assert.Equal(t, "EUR", q.Currency)
			assert.Equal(t, tt.monthly, q.Fees[0].Amount.String())
			assert.Equal(t, tt.total, q.TotalFee.String())
			if tt.ruleID == "" {
				assert.Nil(t, q.Fees[0].AppliedRule)
			} else {
				require.NotNil(t, q.Fees[0].AppliedRule)
				assert.Equal(t, tt.ruleID, q.Fees[0].AppliedRule.ID())
			}
		})
	}
}

func TestQuote_SkipsOutOfWindow(t *testing.T) {
	qc := NewQuoteCalculator()
	future := schedule(t, now.Add(time.Hour))

	end := now.Add(-time.Minute)
	expired, err := domain.NewPricing("pr-old", "prod-1", domain.PricingInput{
		Name: "old", PricingType: "fixed", Amount: domain.MustMoney(9, 1),
		EffectiveFrom: now.Add(-48 * time.Hour), EffectiveTo: &end,
	}, now)
	require.NoError(t, err)

	q, err := qc.Quote(testProduct(t), []*domain.Pricing{expired}, []FeeSchedule{future}, nil, now)
	require.NoError(t, err)
	assert.Empty(t, q.Prices)
	assert.Empty(t, q.Fees)
	assert.True(t, q.TotalFee.IsZero())
}

func TestQuote_PricingWithDiscount(t *testing.T) {
	qc := NewQuoteCalculator()
	p := testProduct(t)
	pr, err := domain.NewPricing("pr-1", "prod-1", domain.PricingInput{
		Name: "monthly", PricingType: "fixed", Amount: domain.MustMoney(10, 1), EffectiveFrom: now.Add(-time.Hour),
	}, now)
	require.NoError(t, err)
	pct, err := domain.ParseRate("10")
	require.NoError(t, err)
	d, err := domain.NewDiscount(pct, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, pr.ApplyDiscount(p, d, now))

	q, err := qc.Quote(p, []*domain.Pricing{pr}, nil, nil, now)
	require.NoError(t, err)
	require.Len(t, q.Prices, 1)
	assert.True(t, q.Prices[0].DiscountApplied)
	assert.Equal(t, "9.00", q.Prices[0].EffectiveAmount.String())
	assert.Equal(t, "1.00", q.Prices[0].Savings.String())
}

func TestQuote_InvalidAmount(t *testing.T) {
	qc := NewQuoteCalculator()
	_, err := qc.Quote(testProduct(t), nil, nil, map[string]string{"amount": "-5"}, now)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = qc.Quote(testProduct(t), nil, nil, map[string]string{"amount": "ten"}, now)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = qc.Quote(nil, nil, nil, nil, now)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
