package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Write-side repositories. Every method returns a mutation, or nil when
// there is nothing to write, and never applies it.

type ProductRepo interface {
	InsertMut(p *domain.Product) *spanner.Mutation
	// UpdateMut writes the dirty fields tracked by the product.
	UpdateMut(p *domain.Product) *spanner.Mutation
}

type PricingRepo interface {
	InsertMut(p *domain.Pricing) *spanner.Mutation
	UpdateMut(p *domain.Pricing) *spanner.Mutation
	DeleteMut(productID, pricingID string) *spanner.Mutation
}

type LifecycleRepo interface {
	InsertMut(e *domain.LifecycleEntry) *spanner.Mutation
	UpdateMut(e *domain.LifecycleEntry) *spanner.Mutation
	// OverlapGuard re-checks the no-overlap rule inside the commit.
	OverlapGuard(e *domain.LifecycleEntry) commitplan.Guard
	DeleteMut(productID, lifecycleID string) *spanner.Mutation
}

type LimitRepo interface {
	InsertMut(l *domain.Limit) *spanner.Mutation
	UpdateMut(l *domain.Limit) *spanner.Mutation
	DeleteMut(productID, limitID string) *spanner.Mutation
}

type DocumentRepo interface {
	InsertMut(d *domain.DocumentRequirement) *spanner.Mutation
	UpdateMut(d *domain.DocumentRequirement) *spanner.Mutation
	DeleteMut(productID, documentID string) *spanner.Mutation
}

type LocalizationRepo interface {
	InsertMut(l *domain.Localization) *spanner.Mutation
	UpdateMut(l *domain.Localization) *spanner.Mutation
	DeleteMut(productID, localizationID string) *spanner.Mutation
}

type FeeRepo interface {
	InsertStructureMut(fs *domain.FeeStructure) *spanner.Mutation
	UpdateStructureMut(fs *domain.FeeStructure) *spanner.Mutation
	DeleteStructureMut(productID, feeStructureID string) *spanner.Mutation

	InsertComponentMut(c *domain.FeeComponent) *spanner.Mutation
	UpdateComponentMut(c *domain.FeeComponent) *spanner.Mutation
	DeleteComponentMut(productID, feeStructureID, feeComponentID string) *spanner.Mutation

	InsertRuleMut(r *domain.FeeRule) *spanner.Mutation
	UpdateRuleMut(r *domain.FeeRule) *spanner.Mutation
	DeleteRuleMut(productID, feeStructureID, feeComponentID, feeRuleID string) *spanner.Mutation
}

type BundleRepo interface {
	InsertMut(b *domain.Bundle) *spanner.Mutation
	UpdateMut(b *domain.Bundle) *spanner.Mutation
	DeleteMut(bundleID string) *spanner.Mutation
	InsertItemMut(bundleID string, item domain.BundleItem) *spanner.Mutation
	DeleteItemMut(bundleID, productID string) *spanner.Mutation
}
