package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_localization"
)

type LocalizationRepo struct{}

func NewLocalizationRepo() *LocalizationRepo {
	return &LocalizationRepo{}
}

func buildLocalizationInsertValues(l *domain.Localization) map[string]interface{} {
	return map[string]interface{}{
		m_localization.ColProductID:      l.ProductID(),
		m_localization.ColLocalizationID: l.ID(),
		m_localization.ColLocale:         l.Locale(),
		m_localization.ColName:           l.Name(),
		m_localization.ColDescription:    nullableString(l.Description()),
		m_localization.ColCreatedAt:      l.CreatedAt().UTC(),
		m_localization.ColUpdatedAt:      l.UpdatedAt().UTC(),
	}
}

func (r *LocalizationRepo) InsertMut(l *domain.Localization) *spanner.Mutation {
	if l == nil {
		return nil
	}
	return m_localization.InsertMutation(buildLocalizationInsertValues(l))
}

func (r *LocalizationRepo) UpdateMut(l *domain.Localization) *spanner.Mutation {
	if l == nil || !l.Changes().HasChanges() {
		return nil
	}
	updates := map[string]interface{}{}
	if l.Changes().Dirty(domain.FieldName) {
		updates[m_localization.ColName] = l.Name()
	}
	if l.Changes().Dirty(domain.FieldDescription) {
		updates[m_localization.ColDescription] = nullableString(l.Description())
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_localization.ColUpdatedAt] = l.UpdatedAt().UTC()
	return m_localization.UpdateMutation(l.ProductID(), l.ID(), updates)
}

func (r *LocalizationRepo) DeleteMut(productID, localizationID string) *spanner.Mutation {
	return m_localization.DeleteMutation(productID, localizationID)
}
