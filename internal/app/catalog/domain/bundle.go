package domain

import (
	"sort"
	"strings"
	"time"
)

const FieldItems = "items"

type BundleStatus string

const (
	BundleStatusDraft   BundleStatus = "draft"
	BundleStatusActive  BundleStatus = "active"
	BundleStatusRetired BundleStatus = "retired"
)

func ParseBundleStatus(s string) (BundleStatus, error) {
	switch st := BundleStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case BundleStatusDraft, BundleStatusActive, BundleStatusRetired:
		return st, nil
	case "":
		return "", RequiredError("status")
	}
	return "", InvalidError("status", "must be draft, active or retired")
}

// BundleItem places a product in a bundle.
type BundleItem struct {
	ProductID string
	Mandatory bool
	Position  int64
	AddedAt   time.Time
}

type BundleInput struct {
	Code        string
	Name        string
	Description string
}

type BundlePatch struct {
	Name        *string
	Description *string
	Status      *string
}

// Bundle is a named set of products sold together.
type Bundle struct {
	id          string
	code        string
	name        string
	description string
	status      BundleStatus
	items       []BundleItem
	createdAt   time.Time
	updatedAt   time.Time
	eventLog
}

// NewBundle creates a draft bundle. Items are added afterwards with AddItem
// so each one goes through the same checks.
func NewBundle(id string, in BundleInput, now time.Time) (*Bundle, error) {
	code, err := normalizeCode("code", in.Code)
	if err != nil {
		return nil, err
	}
	if err := validateProductName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	b := &Bundle{
		id:          id,
		code:        code,
		name:        strings.TrimSpace(in.Name),
		description: strings.TrimSpace(in.Description),
		status:      BundleStatusDraft,
		createdAt:   now,
		updatedAt:   now,
		eventLog:    newEventLog(),
	}
	b.record(newEntityEvent(EntityBundle, ActionCreated, id, id, map[string]any{
		"code": code,
		"name": b.name,
	}, now))
	return b, nil
}

func ReconstructBundle(id, code, name, description string, status BundleStatus, items []BundleItem, createdAt, updatedAt time.Time) *Bundle {
	b := &Bundle{
		id:          id,
		code:        code,
		name:        name,
		description: description,
		status:      status,
		items:       append([]BundleItem(nil), items...),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		eventLog:    newEventLog(),
	}
	b.sortItems()
	return b
}

func (b *Bundle) ID() string           { return b.id }
func (b *Bundle) Code() string         { return b.code }
func (b *Bundle) Name() string         { return b.name }
func (b *Bundle) Description() string  { return b.description }
func (b *Bundle) Status() BundleStatus { return b.status }
func (b *Bundle) CreatedAt() time.Time { return b.createdAt }
func (b *Bundle) UpdatedAt() time.Time { return b.updatedAt }

// Items returns the items ordered by position.
func (b *Bundle) Items() []BundleItem {
	return append([]BundleItem(nil), b.items...)
}

func (b *Bundle) HasProduct(productID string) bool {
	for _, it := range b.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

func (b *Bundle) Update(patch BundlePatch, now time.Time) error {
	if b.status == BundleStatusRetired {
		return ErrBundleRetired
	}
	changes := make(map[string]any)

	if patch.Name != nil {
		if err := validateProductName(*patch.Name); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Name); v != b.name {
			b.name = v
			b.changes.MarkDirty(FieldName)
			changes[FieldName] = v
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Description); v != b.description {
			b.description = v
			b.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}
	if patch.Status != nil {
		st, err := ParseBundleStatus(*patch.Status)
		if err != nil {
			return err
		}
		if st != b.status {
			b.status = st
			b.changes.MarkDirty(FieldStatus)
			changes[FieldStatus] = string(st)
		}
	}

	if len(changes) > 0 {
		b.updatedAt = now
		b.record(newEntityEvent(EntityBundle, ActionUpdated, b.id, b.id, changes, now))
	}
	return nil
}

// AddItem adds a product. The product must exist and must not be archived;
// a product appears at most once per bundle. A zero position appends.
func (b *Bundle) AddItem(product *Product, mandatory bool, position int64, now time.Time) (BundleItem, error) {
	if b.status == BundleStatusRetired {
		return BundleItem{}, ErrBundleRetired
	}
	if product == nil {
		return BundleItem{}, ErrProductNotFound
	}
	if product.IsArchived() {
		return BundleItem{}, ErrBundleProductArchived
	}
	if b.HasProduct(product.ID()) {
		return BundleItem{}, ErrBundleItemDuplicate
	}
	if position < 0 {
		return BundleItem{}, InvalidError("position", "cannot be negative")
	}
	if position == 0 {
		position = b.nextPosition()
	}

	item := BundleItem{ProductID: product.ID(), Mandatory: mandatory, Position: position, AddedAt: now}
	b.items = append(b.items, item)
	b.sortItems()
	b.changes.MarkDirty(FieldItems)
	b.updatedAt = now
	b.record(newEntityEvent(EntityBundle, ActionItemAdded, b.id, b.id, map[string]any{
		"product_id": item.ProductID,
		"mandatory":  mandatory,
		"position":   position,
	}, now))
	return item, nil
}

func (b *Bundle) RemoveItem(productID string, now time.Time) error {
	if b.status == BundleStatusRetired {
		return ErrBundleRetired
	}
	for i, it := range b.items {
		if it.ProductID != productID {
			continue
		}
		b.items = append(b.items[:i], b.items[i+1:]...)
		b.changes.MarkDirty(FieldItems)
		b.updatedAt = now
		b.record(newEntityEvent(EntityBundle, ActionItemRemoved, b.id, b.id, map[string]any{
			"product_id": productID,
		}, now))
		return nil
	}
	return ErrBundleItemNotFound
}

func (b *Bundle) nextPosition() int64 {
	var max int64
	for _, it := range b.items {
		if it.Position > max {
			max = it.Position
		}
	}
	return max + 1
}

func (b *Bundle) sortItems() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return b.items[i].Position < b.items[j].Position
	})
}
