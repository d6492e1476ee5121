package contracts

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// Readers return domain objects rebuilt from storage. Missing rows are
// reported with the matching domain not-found error.

// ProductFilter narrows ListProducts. Empty fields match everything.
type ProductFilter struct {
	Status      string
	Category    string
	ProductType string
}

type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]*domain.Product, error)
}

type PricingReader interface {
	GetPricing(ctx context.Context, productID, pricingID string) (*domain.Pricing, error)
	ListPricing(ctx context.Context, productID string) ([]*domain.Pricing, error)
}

type LifecycleReader interface {
	GetLifecycleEntry(ctx context.Context, productID, lifecycleID string) (*domain.LifecycleEntry, error)
	ListLifecycleEntries(ctx context.Context, productID string) ([]*domain.LifecycleEntry, error)
}

type LimitReader interface {
	GetLimit(ctx context.Context, productID, limitID string) (*domain.Limit, error)
	ListLimits(ctx context.Context, productID string) ([]*domain.Limit, error)
}

type DocumentReader interface {
	GetDocumentRequirement(ctx context.Context, productID, documentID string) (*domain.DocumentRequirement, error)
	ListDocumentRequirements(ctx context.Context, productID string) ([]*domain.DocumentRequirement, error)
}

type LocalizationReader interface {
	GetLocalization(ctx context.Context, productID, localizationID string) (*domain.Localization, error)
	ListLocalizations(ctx context.Context, productID string) ([]*domain.Localization, error)
	// FindLocalization returns nil, nil when the product has no entry for locale.
	FindLocalization(ctx context.Context, productID, locale string) (*domain.Localization, error)
}

type FeeReader interface {
	GetFeeStructure(ctx context.Context, productID, feeStructureID string) (*domain.FeeStructure, error)
	ListFeeStructures(ctx context.Context, productID string) ([]*domain.FeeStructure, error)
	GetFeeComponent(ctx context.Context, productID, feeStructureID, feeComponentID string) (*domain.FeeComponent, error)
	ListFeeComponents(ctx context.Context, productID, feeStructureID string) ([]*domain.FeeComponent, error)
	GetFeeRule(ctx context.Context, productID, feeStructureID, feeComponentID, feeRuleID string) (*domain.FeeRule, error)
	ListFeeRules(ctx context.Context, productID, feeStructureID, feeComponentID string) ([]*domain.FeeRule, error)
	// ListProductFeeComponents and ListProductFeeRules return every
	// component and rule of a product in one read, for quotes.
	ListProductFeeComponents(ctx context.Context, productID string) ([]*domain.FeeComponent, error)
	ListProductFeeRules(ctx context.Context, productID string) ([]*domain.FeeRule, error)
}

type BundleReader interface {
	GetBundle(ctx context.Context, bundleID string) (*domain.Bundle, error)
	ListBundles(ctx context.Context, status string, limit, offset int) ([]*domain.Bundle, error)
}

// ReadModel is the full read side.
type ReadModel interface {
	ProductReader
	PricingReader
	LifecycleReader
	LimitReader
	DocumentReader
	LocalizationReader
	FeeReader
	BundleReader
	OutboxReader
}
