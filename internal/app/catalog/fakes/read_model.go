// Package fakes provides in-memory collaborators for unit tests.
package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// ReadModel is an in-memory contracts.ReadModel. Entities are keyed by id;
// set Err to make every read fail.
type ReadModel struct {
	mu sync.Mutex

	Products      map[string]*domain.Product
	Pricing       map[string]*domain.Pricing
	Lifecycle     map[string]*domain.LifecycleEntry
	Limits        map[string]*domain.Limit
	Documents     map[string]*domain.DocumentRequirement
	Localizations map[string]*domain.Localization
	Structures    map[string]*domain.FeeStructure
	Components    map[string]*domain.FeeComponent
	Rules         map[string]*domain.FeeRule
	Bundles       map[string]*domain.Bundle
	Outbox        []*contracts.OutboxEvent

	Err error
}

var _ contracts.ReadModel = (*ReadModel)(nil)

func NewReadModel() *ReadModel {
	return &ReadModel{
		Products:      map[string]*domain.Product{},
		Pricing:       map[string]*domain.Pricing{},
		Lifecycle:     map[string]*domain.LifecycleEntry{},
		Limits:        map[string]*domain.Limit{},
		Documents:     map[string]*domain.DocumentRequirement{},
		Localizations: map[string]*domain.Localization{},
		Structures:    map[string]*domain.FeeStructure{},
		Components:    map[string]*domain.FeeComponent{},
		Rules:         map[string]*domain.FeeRule{},
		Bundles:       map[string]*domain.Bundle{},
	}
}

func sortedValues[T any](m map[string]T, keep func(T) bool) []T {
	ids := make([]string, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (f *ReadModel) GetProduct(_ context.Context, productID string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	p, ok := f.Products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *ReadModel) ListProducts(_ context.Context, flt contracts.ProductFilter, limit, offset int) ([]*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	all := sortedValues(f.Products, func(p *domain.Product) bool {
		return (flt.Status == "" || string(p.Status()) == flt.Status) &&
			(flt.Category == "" || p.Category() == flt.Category) &&
			(flt.ProductType == "" || string(p.ProductType()) == flt.ProductType)
	})
	return page(all, limit, offset), nil
}

func (f *ReadModel) GetPricing(_ context.Context, productID, pricingID string) (*domain.Pricing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	p, ok := f.Pricing[pricingID]
	if !ok || p.ProductID() != productID {
		return nil, domain.ErrPricingNotFound
	}
	return p, nil
}

func (f *ReadModel) ListPricing(_ context.Context, productID string) ([]*domain.Pricing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Pricing, func(p *domain.Pricing) bool { return p.ProductID() == productID }), nil
}

func (f *ReadModel) GetLifecycleEntry(_ context.Context, productID, lifecycleID string) (*domain.LifecycleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	e, ok := f.Lifecycle[lifecycleID]
	if !ok || e.ProductID() != productID {
		return nil, domain.ErrLifecycleNotFound
	}
	return e, nil
}

func (f *ReadModel) ListLifecycleEntries(_ context.Context, productID string) ([]*domain.LifecycleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Lifecycle, func(e *domain.LifecycleEntry) bool { return e.ProductID() == productID }), nil
}

func (f *ReadModel) GetLimit(_ context.Context, productID, limitID string) (*domain.Limit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	l, ok := f.Limits[limitID]
	if !ok || l.ProductID() != productID {
		return nil, domain.ErrLimitNotFound
	}
	return l, nil
}

func (f *ReadModel) ListLimits(_ context.Context, productID string) ([]*domain.Limit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Limits, func(l *domain.Limit) bool { return l.ProductID() == productID }), nil
}

func (f *ReadModel) GetDocumentRequirement(_ context.Context, productID, documentID string) (*domain.DocumentRequirement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	d, ok := f.Documents[documentID]
	if !ok || d.ProductID() != productID {
		return nil, domain.ErrDocumentNotFound
	}
	return d, nil
}

func (f *ReadModel) ListDocumentRequirements(_ context.Context, productID string) ([]*domain.DocumentRequirement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Documents, func(d *domain.DocumentRequirement) bool { return d.ProductID() == productID }), nil
}

func (f *ReadModel) GetLocalization(_ context.Context, productID, localizationID string) (*domain.Localization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	l, ok := f.Localizations[localizationID]
	if !ok || l.ProductID() != productID {
		return nil, domain.ErrLocalizationNotFound
	}
	return l, nil
}

func (f *ReadModel) ListLocalizations(_ context.Context, productID string) ([]*domain.Localization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Localizations, func(l *domain.Localization) bool { return l.ProductID() == productID }), nil
}

func (f *ReadModel) FindLocalization(_ context.Context, productID, locale string) (*domain.Localization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, l := range f.Localizations {
		if l.ProductID() == productID && l.Locale() == locale {
			return l, nil
		}
	}
	return nil, nil
}

func (f *ReadModel) GetFeeStructure(_ context.Context, productID, feeStructureID string) (*domain.FeeStructure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	fs, ok := f.Structures[feeStructureID]
	if !ok || fs.ProductID() != productID {
		return nil, domain.ErrFeeStructureNotFound
	}
	return fs, nil
}

func (f *ReadModel) ListFeeStructures(_ context.Context, productID string) ([]*domain.FeeStructure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Structures, func(fs *domain.FeeStructure) bool { return fs.ProductID() == productID }), nil
}

func (f *ReadModel) GetFeeComponent(_ context.Context, productID, feeStructureID, feeComponentID string) (*domain.FeeComponent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	c, ok := f.Components[feeComponentID]
	if !ok || c.ProductID() != productID || c.FeeStructureID() != feeStructureID {
		return nil, domain.ErrFeeComponentNotFound
	}
	return c, nil
}

func (f *ReadModel) ListFeeComponents(_ context.Context, productID, feeStructureID string) ([]*domain.FeeComponent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Components, func(c *domain.FeeComponent) bool {
		return c.ProductID() == productID && c.FeeStructureID() == feeStructureID
	}), nil
}

func (f *ReadModel) ListProductFeeComponents(_ context.Context, productID string) ([]*domain.FeeComponent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Components, func(c *domain.FeeComponent) bool { return c.ProductID() == productID }), nil
}

func (f *ReadModel) GetFeeRule(_ context.Context, productID, feeStructureID, feeComponentID, feeRuleID string) (*domain.FeeRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	r, ok := f.Rules[feeRuleID]
	if !ok || r.ProductID() != productID || r.FeeStructureID() != feeStructureID || r.FeeComponentID() != feeComponentID {
		return nil, domain.ErrFeeRuleNotFound
	}
	return r, nil
}

func (f *ReadModel) ListFeeRules(_ context.Context, productID, feeStructureID, feeComponentID string) ([]*domain.FeeRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Rules, func(r *domain.FeeRule) bool {
		return r.ProductID() == productID && r.FeeStructureID() == feeStructureID && r.FeeComponentID() == feeComponentID
	}), nil
}

func (f *ReadModel) ListProductFeeRules(_ context.Context, productID string) ([]*domain.FeeRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return sortedValues(f.Rules, func(r *domain.FeeRule) bool { return r.ProductID() == productID }), nil
}

func (f *ReadModel) GetBundle(_ context.Context, bundleID string) (*domain.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	b, ok := f.Bundles[bundleID]
	if !ok {
		return nil, domain.ErrBundleNotFound
	}
	return b, nil
}

func (f *ReadModel) ListBundles(_ context.Context, status string, limit, offset int) ([]*domain.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	all := sortedValues(f.Bundles, func(b *domain.Bundle) bool { return status == "" || string(b.Status()) == status })
	return page(all, limit, offset), nil
}

func (f *ReadModel) ListPendingEvents(_ context.Context, limit int) ([]*contracts.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	var out []*contracts.OutboxEvent
	for _, e := range f.Outbox {
		if e.Status == "pending" {
			out = append(out, e)
		}
	}
	return page(out, limit, 0), nil
}
