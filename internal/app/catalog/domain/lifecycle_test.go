package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, id string, from time.Time, to *time.Time) *LifecycleEntry {
	t.Helper()
	e, err := NewLifecycleEntry(id, "prod-1", LifecycleInput{Status: "active", EffectiveFrom: from, EffectiveTo: to}, testNow)
	require.NoError(t, err)
	return e
}

func TestLifecycleEntry_EnsureNoOverlap(t *testing.T) {
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := newEntry(t, "lc-1", jan, &feb)

	adjacent := newEntry(t, "lc-2", feb, &mar)
	assert.NoError(t, adjacent.EnsureNoOverlap([]*LifecycleEntry{first}))

	overlapping := newEntry(t, "lc-3", jan.Add(24*time.Hour), nil)
	assert.ErrorIs(t, overlapping.EnsureNoOverlap([]*LifecycleEntry{first, adjacent}), ErrLifecycleOverlap)

	assert.NoError(t, first.EnsureNoOverlap([]*LifecycleEntry{first}), "an entry never overlaps itself")
}

func TestLifecycleEntry_Update(t *testing.T) {
	e := newEntry(t, "lc-1", testNow, nil)
	e.ClearEvents()

	status := "suspended"
	reason := "regulatory review"
	require.NoError(t, e.Update(LifecyclePatch{Status: &status, Reason: &reason}, testNow))
	assert.Equal(t, LifecycleStatusSuspended, e.Status())
	assert.Equal(t, []string{FieldReason, FieldStatus}, e.Changes().DirtyFields())
	require.Len(t, e.DomainEvents(), 1)
	assert.Equal(t, "lifecycle.updated", e.DomainEvents()[0].EventType())

	bad := "gone"
	assert.ErrorIs(t, e.Update(LifecyclePatch{Status: &bad}, testNow), ErrValidation)
}
