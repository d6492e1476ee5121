package domain

import (
	"strings"
	"time"
)

const FieldReason = "reason"

// LifecycleStatus is the status a lifecycle entry records for its window.
type LifecycleStatus string

const (
	LifecycleStatusPending   LifecycleStatus = "pending"
	LifecycleStatusActive    LifecycleStatus = "active"
	LifecycleStatusSuspended LifecycleStatus = "suspended"
	LifecycleStatusRetired   LifecycleStatus = "retired"
)

func ParseLifecycleStatus(s string) (LifecycleStatus, error) {
	switch st := LifecycleStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case LifecycleStatusPending, LifecycleStatusActive, LifecycleStatusSuspended, LifecycleStatusRetired:
		return st, nil
	case "":
		return "", RequiredError("status")
	}
	return "", InvalidError("status", "must be one of pending, active, suspended, retired")
}

// LifecycleInput carries the fields of a new lifecycle entry.
type LifecycleInput struct {
	Status        string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Reason        string
}

// LifecyclePatch is a partial update of a lifecycle entry.
type LifecyclePatch struct {
	Status           *string
	EffectiveFrom    *time.Time
	EffectiveTo      *time.Time
	ClearEffectiveTo bool
	Reason           *string
}

// LifecycleEntry is a time-bounded status record attached to a product.
type LifecycleEntry struct {
	id        string
	productID string
	status    LifecycleStatus
	period    Period
	reason    string
	createdAt time.Time
	updatedAt time.Time
	eventLog
}

func NewLifecycleEntry(id, productID string, in LifecycleInput, now time.Time) (*LifecycleEntry, error) {
	st, err := ParseLifecycleStatus(in.Status)
	if err != nil {
		return nil, err
	}
	period, err := NewPeriod(in.EffectiveFrom, in.EffectiveTo)
	if err != nil {
		return nil, err
	}
	reason, err := optionalText("reason", in.Reason, 1000)
	if err != nil {
		return nil, err
	}

	e := &LifecycleEntry{
		id:        id,
		productID: productID,
		status:    st,
		period:    period,
		reason:    reason,
		createdAt: now,
		updatedAt: now,
		eventLog:  newEventLog(),
	}
	e.record(newEntityEvent(EntityLifecycle, ActionCreated, productID, id, map[string]any{
		"status":         string(st),
		"effective_from": period.From,
		"effective_to":   period.To,
	}, now))
	return e, nil
}

func ReconstructLifecycleEntry(id, productID string, status LifecycleStatus, period Period, reason string, createdAt, updatedAt time.Time) *LifecycleEntry {
	return &LifecycleEntry{
		id:        id,
		productID: productID,
		status:    status,
		period:    period,
		reason:    reason,
		createdAt: createdAt,
		updatedAt: updatedAt,
		eventLog:  newEventLog(),
	}
}

func (e *LifecycleEntry) ID() string              { return e.id }
func (e *LifecycleEntry) ProductID() string       { return e.productID }
func (e *LifecycleEntry) Status() LifecycleStatus { return e.status }
func (e *LifecycleEntry) Period() Period          { return e.period }
func (e *LifecycleEntry) Reason() string          { return e.reason }
func (e *LifecycleEntry) CreatedAt() time.Time    { return e.createdAt }
func (e *LifecycleEntry) UpdatedAt() time.Time    { return e.updatedAt }

func (e *LifecycleEntry) Update(patch LifecyclePatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Status != nil {
		st, err := ParseLifecycleStatus(*patch.Status)
		if err != nil {
			return err
		}
		if st != e.status {
			e.status = st
			e.changes.MarkDirty(FieldStatus)
			changes[FieldStatus] = string(st)
		}
	}
	if period, changed, err := patchPeriod(e.period, patch.EffectiveFrom, patch.EffectiveTo, patch.ClearEffectiveTo); err != nil {
		return err
	} else if changed {
		e.period = period
		e.changes.MarkDirty(FieldEffectiveFrom, FieldEffectiveTo)
		changes[FieldEffectiveFrom] = period.From
		changes[FieldEffectiveTo] = period.To
	}
	if patch.Reason != nil {
		reason, err := optionalText("reason", *patch.Reason, 1000)
		if err != nil {
			return err
		}
		if reason != e.reason {
			e.reason = reason
			e.changes.MarkDirty(FieldReason)
			changes[FieldReason] = reason
		}
	}

	if len(changes) > 0 {
		e.updatedAt = now
		e.record(newEntityEvent(EntityLifecycle, ActionUpdated, e.productID, e.id, changes, now))
	}
	return nil
}

// EnsureNoOverlap fails when e's window overlaps any other entry of the same
// product. The entry itself is skipped so updates can be checked too.
func (e *LifecycleEntry) EnsureNoOverlap(others []*LifecycleEntry) error {
	for _, o := range others {
		if o == nil || o.id == e.id {
			continue
		}
		if e.period.Overlaps(o.period) {
			return ErrLifecycleOverlap
		}
	}
	return nil
}
