package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle_item"
)

type BundleRepo struct{}

func NewBundleRepo() *BundleRepo {
	return &BundleRepo{}
}

func buildBundleInsertValues(b *domain.Bundle) map[string]interface{} {
	return map[string]interface{}{
		m_bundle.ColBundleID:    b.ID(),
		m_bundle.ColCode:        b.Code(),
		m_bundle.ColName:        b.Name(),
		m_bundle.ColDescription: nullableString(b.Description()),
		m_bundle.ColStatus:      string(b.Status()),
		m_bundle.ColCreatedAt:   b.CreatedAt().UTC(),
		m_bundle.ColUpdatedAt:   b.UpdatedAt().UTC(),
	}
}

// InsertMut inserts the bundle row only; items are inserted with InsertItemMut.
func (r *BundleRepo) InsertMut(b *domain.Bundle) *spanner.Mutation {
	if b == nil {
		return nil
	}
	return m_bundle.InsertMutation(buildBundleInsertValues(b))
}

// UpdateMut writes detail changes. An item-only change still bumps updated_at.
func (r *BundleRepo) UpdateMut(b *domain.Bundle) *spanner.Mutation {
	if b == nil || !b.Changes().HasChanges() {
		return nil
	}
	ch := b.Changes()
	updates := map[string]interface{}{
		m_bundle.ColUpdatedAt: b.UpdatedAt().UTC(),
	}
	if ch.Dirty(domain.FieldName) {
		updates[m_bundle.ColName] = b.Name()
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_bundle.ColDescription] = nullableString(b.Description())
	}
	if ch.Dirty(domain.FieldStatus) {
		updates[m_bundle.ColStatus] = string(b.Status())
	}
	return m_bundle.UpdateMutation(b.ID(), updates)
}

func (r *BundleRepo) DeleteMut(bundleID string) *spanner.Mutation {
	return m_bundle.DeleteMutation(bundleID)
}

func buildBundleItemInsertValues(bundleID string, it domain.BundleItem) map[string]interface{} {
	return map[string]interface{}{
		m_bundle_item.ColBundleID:  bundleID,
		m_bundle_item.ColProductID: it.ProductID,
		m_bundle_item.ColMandatory: it.Mandatory,
		m_bundle_item.ColPosition:  it.Position,
		m_bundle_item.ColAddedAt:   it.AddedAt.UTC(),
	}
}

func (r *BundleRepo) InsertItemMut(bundleID string, item domain.BundleItem) *spanner.Mutation {
	return m_bundle_item.InsertMutation(buildBundleItemInsertValues(bundleID, item))
}

func (r *BundleRepo) DeleteItemMut(bundleID, productID string) *spanner.Mutation {
	return m_bundle_item.DeleteMutation(bundleID, productID)
}
