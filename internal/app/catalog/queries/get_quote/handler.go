// Package get_quote prices a product for a set of request attributes.
package get_quote

import (
	"context"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain/services"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
)

type ReadModel interface {
	contracts.ProductReader
	contracts.PricingReader
	contracts.FeeReader
}

type Query struct {
	ProductID  string
	Attributes map[string]string
	// At defaults to the current time.
	At *time.Time
}

type Handler struct {
	readModel  ReadModel
	calculator *services.QuoteCalculator
	clock      clock.Clock
}

func NewHandler(r ReadModel, clk clock.Clock) *Handler {
	return &Handler{readModel: r, calculator: services.NewQuoteCalculator(), clock: clk}
}

func (h *Handler) Execute(ctx context.Context, q Query) (*dto.QuoteDTO, error) {
	at := h.clock.Now()
	if q.At != nil {
		at = q.At.UTC()
	}

	product, err := h.readModel.GetProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	pricing, err := h.readModel.ListPricing(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	schedules, err := h.loadSchedules(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	quote, err := h.calculator.Quote(product, pricing, schedules, q.Attributes, at)
	if err != nil {
		return nil, err
	}
	return dto.FromQuote(product.ID(), quote), nil
}

// loadSchedules reads the whole fee tree of a product in three queries and
// groups it in memory.
func (h *Handler) loadSchedules(ctx context.Context, productID string) ([]services.FeeSchedule, error) {
	structures, err := h.readModel.ListFeeStructures(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, nil
	}
	components, err := h.readModel.ListProductFeeComponents(ctx, productID)
	if err != nil {
		return nil, err
	}
	rules, err := h.readModel.ListProductFeeRules(ctx, productID)
	if err != nil {
		return nil, err
	}

	rulesByComponent := make(map[string][]*domain.FeeRule)
	for _, r := range rules {
		rulesByComponent[r.FeeComponentID()] = append(rulesByComponent[r.FeeComponentID()], r)
	}
	componentsByStructure := make(map[string][]services.ComponentRules)
	for _, c := range components {
		componentsByStructure[c.FeeStructureID()] = append(componentsByStructure[c.FeeStructureID()], services.ComponentRules{
			Component: c,
			Rules:     rulesByComponent[c.ID()],
		})
	}

	out := make([]services.FeeSchedule, 0, len(structures))
	for _, s := range structures {
		out = append(out, services.FeeSchedule{Structure: s, Components: componentsByStructure[s.ID()]})
	}
	return out, nil
}
