package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_document"
)

type DocumentRepo struct{}

func NewDocumentRepo() *DocumentRepo {
	return &DocumentRepo{}
}

func buildDocumentInsertValues(d *domain.DocumentRequirement) map[string]interface{} {
	return map[string]interface{}{
		m_document.ColProductID:    d.ProductID(),
		m_document.ColDocumentID:   d.ID(),
		m_document.ColDocumentType: d.DocumentType(),
		m_document.ColDescription:  nullableString(d.Description()),
		m_document.ColMandatory:    d.Mandatory(),
		m_document.ColValidityDays: nullableInt64(d.ValidityDays()),
		m_document.ColCreatedAt:    d.CreatedAt().UTC(),
		m_document.ColUpdatedAt:    d.UpdatedAt().UTC(),
	}
}

func (r *DocumentRepo) InsertMut(d *domain.DocumentRequirement) *spanner.Mutation {
	if d == nil {
		return nil
	}
	return m_document.InsertMutation(buildDocumentInsertValues(d))
}

func (r *DocumentRepo) UpdateMut(d *domain.DocumentRequirement) *spanner.Mutation {
	if d == nil || !d.Changes().HasChanges() {
		return nil
	}
	ch := d.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldDocumentType) {
		updates[m_document.ColDocumentType] = d.DocumentType()
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_document.ColDescription] = nullableString(d.Description())
	}
	if ch.Dirty(domain.FieldMandatory) {
		updates[m_document.ColMandatory] = d.Mandatory()
	}
	if ch.Dirty(domain.FieldValidityDays) {
		updates[m_document.ColValidityDays] = nullableInt64(d.ValidityDays())
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_document.ColUpdatedAt] = d.UpdatedAt().UTC()
	return m_document.UpdateMutation(d.ProductID(), d.ID(), updates)
}

func (r *DocumentRepo) DeleteMut(productID, documentID string) *spanner.Mutation {
	return m_document.DeleteMutation(productID, documentID)
}
