package domain

import "time"

// Period is a half-open time window [From, To). A nil To is open-ended.
type Period struct {
	From time.Time
	To   *time.Time
}

// NewPeriod validates that from is set and to, when present, is after from.
func NewPeriod(from time.Time, to *time.Time) (Period, error) {
	if from.IsZero() {
		return Period{}, RequiredError("effective_from")
	}
	p := Period{From: from.UTC()}
	if to != nil {
		if !to.After(from) {
			return Period{}, ErrInvalidEffectivePeriod
		}
		t := to.UTC()
		p.To = &t
	}
	return p, nil
}

// Contains reports whether t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	if t.Before(p.From) {
		return false
	}
	return p.To == nil || t.Before(*p.To)
}

// Overlaps reports whether two windows share at least one instant.
func (p Period) Overlaps(other Period) bool {
	if p.To != nil && !other.From.Before(*p.To) {
		return false
	}
	if other.To != nil && !p.From.Before(*other.To) {
		return false
	}
	return true
}

// Equal compares both bounds.
func (p Period) Equal(other Period) bool {
	if !p.From.Equal(other.From) {
		return false
	}
	if p.To == nil || other.To == nil {
		return p.To == nil && other.To == nil
	}
	return p.To.Equal(*other.To)
}
