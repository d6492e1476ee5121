package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRule(t *testing.T, in FeeRuleInput) *FeeRule {
	t.Helper()
	r, err := NewFeeRule("rule-1", "prod-1", "fs-1", "fc-1", in, testNow)
	require.NoError(t, err)
	return r
}

func TestFeeRule_Matches(t *testing.T) {
	tests := []struct {
		name  string
		op    string
		value string
		attrs map[string]string
		want  bool
	}{
		{"numeric gte hit", "gte", "5000", map[string]string{"balance": "5000.00"}, true},
		{"numeric gte miss", "gte", "5000", map[string]string{"balance": "4999.99"}, false},
		{"numeric eq ignores formatting", "eq", "10", map[string]string{"balance": "10.0"}, true},
		{"lt", "lt", "1", map[string]string{"balance": "0.5"}, true},
		{"missing attribute", "gte", "0", map[string]string{}, false},
		{"numeric op on text", "gt", "5", map[string]string{"balance": "lots"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRule(t, FeeRuleInput{Name: "r", Attribute: "balance", Operator: tt.op, Value: tt.value, Action: "waive"})
			assert.Equal(t, tt.want, r.Matches(tt.attrs))
		})
	}
}

func TestFeeRule_Matches_Strings(t *testing.T) {
	r := newRule(t, FeeRuleInput{Name: "r", Attribute: "channel", Operator: "eq", Value: "online", Action: "waive"})
	assert.True(t, r.Matches(map[string]string{"channel": "Online"}))
	assert.False(t, r.Matches(map[string]string{"channel": "branch"}))

	ne := newRule(t, FeeRuleInput{Name: "r", Attribute: "channel", Operator: "ne", Value: "online", Action: "waive"})
	assert.True(t, ne.Matches(map[string]string{"channel": "branch"}))
}

func TestNewFeeRule_Validation(t *testing.T) {
	_, err := NewFeeRule("r", "p", "s", "c", FeeRuleInput{Name: "r", Attribute: "channel", Operator: "gt", Value: "online", Action: "waive"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidRuleCondition)

	_, err = NewFeeRule("r", "p", "s", "c", FeeRuleInput{Name: "r", Attribute: "a", Operator: "eq", Value: "1", Action: "discount"}, testNow)
	assert.ErrorIs(t, err, ErrValidation, "discount needs a value")

	_, err = NewFeeRule("r", "p", "s", "c", FeeRuleInput{Name: "r", Attribute: "a", Operator: "eq", Value: "1", Action: "discount", ActionValue: big.NewRat(150, 1)}, testNow)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewFeeRule("r", "p", "s", "c", FeeRuleInput{Name: "r", Attribute: "a", Operator: "eq", Value: "1", Action: "override", ActionValue: big.NewRat(-1, 1)}, testNow)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestFeeRule_Apply(t *testing.T) {
	base := MustMoney(20, 1)

	waive := newRule(t, FeeRuleInput{Name: "w", Attribute: "a", Operator: "eq", Value: "1", Action: "waive"})
	assert.True(t, waive.Apply(base).IsZero())
	assert.Nil(t, waive.ActionValue())

	discount := newRule(t, FeeRuleInput{Name: "d", Attribute: "a", Operator: "eq", Value: "1", Action: "discount", ActionValue: big.NewRat(25, 1)})
	assert.Equal(t, "15.00", discount.Apply(base).String())

	override := newRule(t, FeeRuleInput{Name: "o", Attribute: "a", Operator: "eq", Value: "1", Action: "override", ActionValue: big.NewRat(3, 1)})
	assert.Equal(t, "3.00", override.Apply(base).String())
}

func TestFeeRule_Update_OnlyChangedFields(t *testing.T) {
	r := newRule(t, FeeRuleInput{Name: "r", Attribute: "balance", Operator: "gte", Value: "100", Action: "waive"})
	r.ClearEvents()

	priority := int64(3)
	sameOp := "gte"
	require.NoError(t, r.Update(FeeRulePatch{Operator: &sameOp, Priority: &priority}, testNow))
	assert.Equal(t, []string{FieldPriority}, r.Changes().DirtyFields())

	badValue := "high"
	assert.ErrorIs(t, r.Update(FeeRulePatch{Value: &badValue}, testNow), ErrInvalidRuleCondition)
	assert.Equal(t, "100", r.Value(), "a rejected patch leaves the rule untouched")
}

func TestFeeComponent_BaseAmount(t *testing.T) {
	flat, err := NewFeeComponent("fc-1", "prod-1", "fs-1", FeeComponentInput{
		Name: "monthly", FeeType: "flat", Amount: MustMoney(5, 1), Frequency: "monthly",
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "5.00", flat.BaseAmount(nil).String())

	pct, err := NewFeeComponent("fc-2", "prod-1", "fs-1", FeeComponentInput{
		Name: "fx", FeeType: "percentage", Rate: mustRate(t, "1.5"), Frequency: "per_transaction",
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "3.00", pct.BaseAmount(MustMoney(200, 1)).String())
	assert.True(t, pct.BaseAmount(nil).IsZero())

	_, err = NewFeeComponent("fc-3", "prod-1", "fs-1", FeeComponentInput{
		Name: "bad", FeeType: "flat", Rate: mustRate(t, "1"), Frequency: "monthly",
	}, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}
