// Package product_views serves the read side of the entities that hang off a
// product: pricing, lifecycle, limits, documents, localizations and fees.
package product_views

import (
	"context"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
)

type ReadModel interface {
	contracts.ProductReader
	contracts.PricingReader
	contracts.LifecycleReader
	contracts.LimitReader
	contracts.DocumentReader
	contracts.LocalizationReader
	contracts.FeeReader
}

type Handler struct {
	readModel ReadModel
}

func NewHandler(r ReadModel) *Handler {
	return &Handler{readModel: r}
}

// List endpoints of a missing product return ErrProductNotFound instead of
// an empty list.
func (h *Handler) ensureProduct(ctx context.Context, productID string) error {
	_, err := h.readModel.GetProduct(ctx, productID)
	return err
}

func (h *Handler) GetPricing(ctx context.Context, productID, pricingID string) (*dto.PricingDTO, error) {
	p, err := h.readModel.GetPricing(ctx, productID, pricingID)
	if err != nil {
		return nil, err
	}
	return dto.FromPricing(p), nil
}

// ListPricing returns every pricing entry, or only those in effect at *at.
func (h *Handler) ListPricing(ctx context.Context, productID string, at *time.Time) ([]*dto.PricingDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := h.readModel.ListPricing(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PricingDTO, 0, len(items))
	for _, p := range items {
		if at != nil && !p.Period().Contains(*at) {
			continue
		}
		out = append(out, dto.FromPricing(p))
	}
	return out, nil
}

func (h *Handler) GetLifecycleEntry(ctx context.Context, productID, lifecycleID string) (*dto.LifecycleDTO, error) {
	e, err := h.readModel.GetLifecycleEntry(ctx, productID, lifecycleID)
	if err != nil {
		return nil, err
	}
	return dto.FromLifecycle(e), nil
}

func (h *Handler) ListLifecycleEntries(ctx context.Context, productID string, at *time.Time) ([]*dto.LifecycleDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := h.readModel.ListLifecycleEntries(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LifecycleDTO, 0, len(items))
	for _, e := range items {
		if at != nil && !e.Period().Contains(*at) {
			continue
		}
		out = append(out, dto.FromLifecycle(e))
	}
	return out, nil
}

func (h *Handler) GetLimit(ctx context.Context, productID, limitID string) (*dto.LimitDTO, error) {
	l, err := h.readModel.GetLimit(ctx, productID, limitID)
	if err != nil {
		return nil, err
	}
	return dto.FromLimit(l), nil
}

func (h *Handler) ListLimits(ctx context.Context, productID string) ([]*dto.LimitDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := h.readModel.ListLimits(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, dto.FromLimit), nil
}

func (h *Handler) GetDocumentRequirement(ctx context.Context, productID, documentID string) (*dto.DocumentRequirementDTO, error) {
	d, err := h.readModel.GetDocumentRequirement(ctx, productID, documentID)
	if err != nil {
		return nil, err
	}
	return dto.FromDocument(d), nil
}

func (h *Handler) ListDocumentRequirements(ctx context.Context, productID string) ([]*dto.DocumentRequirementDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := h.readModel.ListDocumentRequirements(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, dto.FromDocument), nil
}

func (h *Handler) GetLocalization(ctx context.Context, productID, localizationID string) (*dto.LocalizationDTO, error) {
	l, err := h.readModel.GetLocalization(ctx, productID, localizationID)
	if err != nil {
		return nil, err
	}
	return dto.FromLocalization(l), nil
}

func (h *Handler) ListLocalizations(ctx context.Context, productID string) ([]*dto.LocalizationDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	items, err := h.readModel.ListLocalizations(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, dto.FromLocalization), nil
}

// GetFeeStructure returns the structure with its components and rules.
func (h *Handler) GetFeeStructure(ctx context.Context, productID, feeStructureID string) (*dto.FeeStructureDTO, error) {
	fs, err := h.readModel.GetFeeStructure(ctx, productID, feeStructureID)
	if err != nil {
		return nil, err
	}
	components, err := h.readModel.ListFeeComponents(ctx, productID, feeStructureID)
	if err != nil {
		return nil, err
	}
	rules, err := h.readModel.ListProductFeeRules(ctx, productID)
	if err != nil {
		return nil, err
	}
	return buildTree([]*domain.FeeStructure{fs}, components, rules)[0], nil
}

// ListFeeStructures returns the full fee tree of a product.
func (h *Handler) ListFeeStructures(ctx context.Context, productID string) ([]*dto.FeeStructureDTO, error) {
	if err := h.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	structures, err := h.readModel.ListFeeStructures(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return []*dto.FeeStructureDTO{}, nil
	}
	components, err := h.readModel.ListProductFeeComponents(ctx, productID)
	if err != nil {
		return nil, err
	}
	rules, err := h.readModel.ListProductFeeRules(ctx, productID)
	if err != nil {
		return nil, err
	}
	return buildTree(structures, components, rules), nil
}

func (h *Handler) GetFeeComponent(ctx context.Context, productID, feeStructureID, feeComponentID string) (*dto.FeeComponentDTO, error) {
	c, err := h.readModel.GetFeeComponent(ctx, productID, feeStructureID, feeComponentID)
	if err != nil {
		return nil, err
	}
	rules, err := h.readModel.ListFeeRules(ctx, productID, feeStructureID, feeComponentID)
	if err != nil {
		return nil, err
	}
	out := dto.FromFeeComponent(c)
	for _, r := range rules {
		out.Rules = append(out.Rules, *dto.FromFeeRule(r))
	}
	return out, nil
}

// ListFeeComponents returns the components of one structure with their rules.
func (h *Handler) ListFeeComponents(ctx context.Context, productID, feeStructureID string) ([]*dto.FeeComponentDTO, error) {
	if _, err := h.readModel.GetFeeStructure(ctx, productID, feeStructureID); err != nil {
		return nil, err
	}
	components, err := h.readModel.ListFeeComponents(ctx, productID, feeStructureID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return []*dto.FeeComponentDTO{}, nil
	}
	rules, err := h.readModel.ListProductFeeRules(ctx, productID)
	if err != nil {
		return nil, err
	}
	rulesByComponent := make(map[string][]dto.FeeRuleDTO)
	for _, r := range rules {
		rulesByComponent[r.FeeComponentID()] = append(rulesByComponent[r.FeeComponentID()], *dto.FromFeeRule(r))
	}
	out := make([]*dto.FeeComponentDTO, 0, len(components))
	for _, c := range components {
		cd := dto.FromFeeComponent(c)
		cd.Rules = rulesByComponent[c.ID()]
		out = append(out, cd)
	}
	return out, nil
}

func (h *Handler) ListFeeRules(ctx context.Context, productID, feeStructureID, feeComponentID string) ([]*dto.FeeRuleDTO, error) {
	if _, err := h.readModel.GetFeeComponent(ctx, productID, feeStructureID, feeComponentID); err != nil {
		return nil, err
	}
	rules, err := h.readModel.ListFeeRules(ctx, productID, feeStructureID, feeComponentID)
	if err != nil {
		return nil, err
	}
	return mapAll(rules, dto.FromFeeRule), nil
}

func (h *Handler) GetFeeRule(ctx context.Context, productID, feeStructureID, feeComponentID, feeRuleID string) (*dto.FeeRuleDTO, error) {
	r, err := h.readModel.GetFeeRule(ctx, productID, feeStructureID, feeComponentID, feeRuleID)
	if err != nil {
		return nil, err
	}
	return dto.FromFeeRule(r), nil
}

func buildTree(structures []*domain.FeeStructure, components []*domain.FeeComponent, rules []*domain.FeeRule) []*dto.FeeStructureDTO {
	rulesByComponent := make(map[string][]dto.FeeRuleDTO)
	for _, r := range rules {
		rulesByComponent[r.FeeComponentID()] = append(rulesByComponent[r.FeeComponentID()], *dto.FromFeeRule(r))
	}
	componentsByStructure := make(map[string][]dto.FeeComponentDTO)
	for _, c := range components {
		cd := dto.FromFeeComponent(c)
		cd.Rules = rulesByComponent[c.ID()]
		componentsByStructure[c.FeeStructureID()] = append(componentsByStructure[c.FeeStructureID()], *cd)
	}

	out := make([]*dto.FeeStructureDTO, 0, len(structures))
	for _, fs := range structures {
		sd := dto.FromFeeStructure(fs)
		sd.Components = componentsByStructure[fs.ID()]
		out = append(out, sd)
	}
	return out
}

func mapAll[E any, D any](items []E, f func(E) *D) []*D {
	out := make([]*D, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
