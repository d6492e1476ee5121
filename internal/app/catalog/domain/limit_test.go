package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimit_Bounds(t *testing.T) {
	zero := int64(0)
	tests := []struct {
		name string
		in   LimitInput
		want error
	}{
		{"no bound", LimitInput{LimitType: "withdrawal", Period: "daily"}, ErrLimitBoundsMissing},
		{"inverted", LimitInput{LimitType: "withdrawal", Period: "daily", MinAmount: MustMoney(10, 1), MaxAmount: MustMoney(5, 1)}, ErrLimitBoundsInverted},
		{"zero count", LimitInput{LimitType: "withdrawal", Period: "daily", MaxCount: &zero}, ErrInvalidMaxCount},
		{"unknown type", LimitInput{LimitType: "spending", Period: "daily", MaxCount: &zero}, ErrValidation},
		{"unknown period", LimitInput{LimitType: "withdrawal", Period: "hourly", MaxAmount: MustMoney(5, 1)}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLimit("lim-1", "prod-1", tt.in, testNow)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLimit_Update_ClearBound(t *testing.T) {
	count := int64(5)
	l, err := NewLimit("lim-1", "prod-1", LimitInput{
		LimitType: "withdrawal",
		Period:    "daily",
		MaxAmount: MustMoney(1000, 1),
		MaxCount:  &count,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "limit.created", l.DomainEvents()[0].EventType())

	require.NoError(t, l.Update(LimitPatch{ClearMaxCount: true}, testNow))
	assert.Nil(t, l.MaxCount())

	assert.ErrorIs(t, l.Update(LimitPatch{ClearMaxAmount: true}, testNow), ErrLimitBoundsMissing,
		"removing the last bound is rejected")
}
