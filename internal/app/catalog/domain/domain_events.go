package domain

import "time"

// DomainEvent is a fact that happened in the catalog. Events are collected by
// entities and written to the outbox in the same commit as the state change.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// Event actions shared by entity events.
const (
	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionDeleted         = "deleted"
	ActionDiscountApplied = "discount_applied"
	ActionDiscountRemoved = "discount_removed"
	ActionItemAdded       = "item_added"
	ActionItemRemoved     = "item_removed"
)

// ProductCreatedEvent is raised when a new product is created.
type ProductCreatedEvent struct {
	ProductID   string
	Code        string
	Name        string
	ProductType ProductType
	Category    string
	Currency    string
	CreatedAt   time.Time
}

func (e *ProductCreatedEvent) EventType() string     { return "product.created" }
func (e *ProductCreatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when product details change.
type ProductUpdatedEvent struct {
	ProductID string
	UpdatedAt time.Time
	Changes   map[string]any
}

func (e *ProductUpdatedEvent) EventType() string     { return "product.updated" }
func (e *ProductUpdatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ProductStatusChangedEvent is raised on activate, deactivate and archive.
type ProductStatusChangedEvent struct {
	ProductID string
	From      ProductStatus
	To        ProductStatus
	ChangedAt time.Time
}

func (e *ProductStatusChangedEvent) EventType() string {
	switch e.To {
	case ProductStatusActive:
		return "product.activated"
	case ProductStatusInactive:
		return "product.deactivated"
	case ProductStatusArchived:
		return "product.archived"
	}
	return "product.status_changed"
}
func (e *ProductStatusChangedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// EntityEvent covers the catalog entities hanging off a product or a bundle
// (pricing, lifecycle, limits, fee structures, bundles...).
// Its type is "<entity>.<action>", e.g. "pricing.created".
type EntityEvent struct {
	Entity    string
	Action    string
	Aggregate string
	EntityID  string
	Changes   map[string]any
	At        time.Time
}

func (e *EntityEvent) EventType() string     { return e.Entity + "." + e.Action }
func (e *EntityEvent) AggregateID() string   { return e.Aggregate }
func (e *EntityEvent) OccurredAt() time.Time { return e.At }

// Entity names used in EntityEvent.
const (
	EntityPricing      = "pricing"
	EntityLifecycle    = "lifecycle"
	EntityLimit        = "limit"
	EntityDocument     = "document_requirement"
	EntityLocalization = "localization"
	EntityFeeStructure = "fee_structure"
	EntityFeeComponent = "fee_component"
	EntityFeeRule      = "fee_rule"
	EntityBundle       = "bundle"
)

func newEntityEvent(entity, action, aggregate, id string, changes map[string]any, at time.Time) *EntityEvent {
	return &EntityEvent{
		Entity:    entity,
		Action:    action,
		Aggregate: aggregate,
		EntityID:  id,
		Changes:   changes,
		At:        at,
	}
}

// DeletedEvent builds the event emitted when a child entity is removed.
// Deletion has no domain method because nothing can veto it.
func DeletedEvent(entity, aggregate, id string, at time.Time) *EntityEvent {
	return newEntityEvent(entity, ActionDeleted, aggregate, id, nil, at)
}

// eventLog is embedded by entities to collect events and dirty fields.
type eventLog struct {
	changes *ChangeTracker
	events  []DomainEvent
}

func newEventLog() eventLog {
	return eventLog{changes: NewChangeTracker()}
}

func (l *eventLog) Changes() *ChangeTracker {
	return l.changes
}

func (l *eventLog) DomainEvents() []DomainEvent {
	return l.events
}

func (l *eventLog) ClearEvents() {
	l.events = nil
}

func (l *eventLog) record(ev DomainEvent) {
	l.events = append(l.events, ev)
}
