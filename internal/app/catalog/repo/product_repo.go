package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_product"
)

// ProductRepo is the Spanner implementation of the write-side repository.
// It returns *spanner.Mutation objects but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildProductInsertValues is unexported so tests in the same package can
// inspect the map without relying on spanner.Mutation internals.
func buildProductInsertValues(p *domain.Product) map[string]interface{} {
	return map[string]interface{}{
		m_product.ColProductID:   p.ID(),
		m_product.ColCode:        p.Code(),
		m_product.ColName:        p.Name(),
		m_product.ColDescription: nullableString(p.Description()),
		m_product.ColProductType: string(p.ProductType()),
		m_product.ColCategory:    p.Category(),
		m_product.ColCurrency:    p.Currency(),
		m_product.ColStatus:      string(p.Status()),
		m_product.ColCreatedAt:   p.CreatedAt().UTC(),
		m_product.ColUpdatedAt:   p.UpdatedAt().UTC(),
		m_product.ColArchivedAt:  nullableTime(p.ArchivedAt()),
	}
}

// buildProductUpdateValues maps the dirty fields to columns and always stamps
// updated_at when anything changed.
func buildProductUpdateValues(p *domain.Product) map[string]interface{} {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}
	ch := p.Changes()
	updates := map[string]interface{}{}

	if ch.Dirty(domain.FieldName) {
		updates[m_product.ColName] = p.Name()
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_product.ColDescription] = nullableString(p.Description())
	}
	if ch.Dirty(domain.FieldCategory) {
		updates[m_product.ColCategory] = p.Category()
	}
	if ch.Dirty(domain.FieldCurrency) {
		updates[m_product.ColCurrency] = p.Currency()
	}
	if ch.Dirty(domain.FieldStatus) {
		updates[m_product.ColStatus] = string(p.Status())
	}
	if ch.Dirty(domain.FieldArchivedAt) {
		updates[m_product.ColArchivedAt] = nullableTime(p.ArchivedAt())
	}

	if len(updates) == 0 {
		return nil
	}
	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_product.InsertMutation(buildProductInsertValues(p))
}

// UpdateMut builds an Update mutation from the product's ChangeTracker.
// Archiving is an update too: the aggregate must already be archived.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	updates := buildProductUpdateValues(p)
	if updates == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), updates)
}
