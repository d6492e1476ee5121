package repo

import (
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_component"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_rule"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_structure"
)

func TestFeeRepo_StructureValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fs, err := domain.NewFeeStructure("fs-1", "prod-1", domain.FeeStructureInput{
		Name:          "Standard",
		EffectiveFrom: now,
	}, now)
	require.NoError(t, err)

	values := buildFeeStructureInsertValues(fs)
	assert.Equal(t, "fs-1", values[m_fee_structure.ColFeeStructureID])
	assert.Equal(t, now, values[m_fee_structure.ColEffectiveFrom])
	assert.Nil(t, values[m_fee_structure.ColEffectiveTo])

	fs.Changes().Clear()
	assert.Nil(t, NewFeeRepo().UpdateStructureMut(fs))
}

func TestFeeRepo_ComponentValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rate, err := domain.ParseRate("1.5")
	require.NoError(t, err)

	c, err := domain.NewFeeComponent("fc-1", "prod-1", "fs-1", domain.FeeComponentInput{
		Name:      "FX fee",
		FeeType:   "percentage",
		Rate:      rate,
		Frequency: "per_transaction",
	}, now)
	require.NoError(t, err)

	values := buildFeeComponentInsertValues(c)
	assert.Equal(t, "percentage", values[m_fee_component.ColFeeType])
	assert.Equal(t, "per_transaction", values[m_fee_component.ColFrequency])
	assert.Nil(t, values[m_fee_component.ColAmountNumerator])
	got := values[m_fee_component.ColRate].(spanner.NullNumeric)
	require.True(t, got.Valid)
	assert.Equal(t, 0, got.Numeric.Cmp(big.NewRat(3, 2)))
}

func TestFeeRepo_RuleValues(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	waive, err := domain.NewFeeRule("fr-1", "prod-1", "fs-1", "fc-1", domain.FeeRuleInput{
		Name:      "Waive for premium",
		Attribute: "tier",
		Operator:  "eq",
		Value:     "premium",
		Action:    "waive",
		Priority:  1,
	}, now)
	require.NoError(t, err)

	values := buildFeeRuleInsertValues(waive)
	assert.Equal(t, "waive", values[m_fee_rule.ColAction])
	assert.Equal(t, spanner.NullNumeric{}, values[m_fee_rule.ColActionValue])
	assert.Equal(t, int64(1), values[m_fee_rule.ColPriority])

	waive.Changes().Clear()
	prio := int64(5)
	require.NoError(t, waive.Update(domain.FeeRulePatch{Priority: &prio}, now.Add(time.Minute)))

	mut := NewFeeRepo().UpdateRuleMut(waive)
	require.NotNil(t, mut)
}
