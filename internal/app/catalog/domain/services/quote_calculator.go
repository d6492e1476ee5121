package services

import (
	"sort"
	"strings"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// AttrAmount is the request attribute percentage fees are computed on.
const AttrAmount = "amount"

// FeeSchedule is one fee structure with its components and their rules.
type FeeSchedule struct {
	Structure  *domain.FeeStructure
	Components []ComponentRules
}

type ComponentRules struct {
	Component *domain.FeeComponent
	Rules     []*domain.FeeRule
}

// PriceLine is the effective value of one pricing entry.
type PriceLine struct {
	Pricing         *domain.Pricing
	EffectiveAmount *domain.Money
	EffectiveRate   *domain.Rate
	Savings         *domain.Money
	DiscountApplied bool
}

// FeeLine is the computed charge of one fee component.
type FeeLine struct {
	Structure   *domain.FeeStructure
	Component   *domain.FeeComponent
	BaseAmount  *domain.Money
	Amount      *domain.Money
	AppliedRule *domain.FeeRule
}

type Quote struct {
	At       time.Time
	Currency string
	Prices   []PriceLine
	Fees     []FeeLine
	TotalFee *domain.Money
}

// QuoteCalculator computes what a product costs at a given instant for a set
// of request attributes.
type QuoteCalculator struct{}

func NewQuoteCalculator() *QuoteCalculator {
	return &QuoteCalculator{}
}

// CalculateEffectivePrice returns basePrice with the discount applied when it
// is valid at now.
func (qc *QuoteCalculator) CalculateEffectivePrice(basePrice *domain.Money, discount *domain.Discount, now time.Time) *domain.Money {
	if discount == nil || !discount.IsValidAt(now) {
		return basePrice
	}
	return discount.ApplyTo(basePrice)
}

// CalculateSavings returns how much the discount takes off basePrice at now.
func (qc *QuoteCalculator) CalculateSavings(basePrice *domain.Money, discount *domain.Discount, now time.Time) *domain.Money {
	if discount == nil || !discount.IsValidAt(now) {
		return domain.Zero()
	}
	return basePrice.Subtract(discount.ApplyTo(basePrice))
}

// Quote builds the quote. Pricing entries and fee structures outside their
// effective window are skipped. For each component the first matching rule,
// lowest priority first, is applied.
func (qc *QuoteCalculator) Quote(
	product *domain.Product,
	pricing []*domain.Pricing,
	schedules []FeeSchedule,
	attrs map[string]string,
	at time.Time,
) (*Quote, error) {
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	txAmount, err := transactionAmount(attrs)
	if err != nil {
		return nil, err
	}

	q := &Quote{At: at, Currency: product.Currency(), TotalFee: domain.Zero()}

	for _, p := range pricing {
		if !p.Period().Contains(at) {
			continue
		}
		line := PriceLine{Pricing: p, Savings: domain.Zero()}
		if amt := p.Amount(); amt != nil {
			line.EffectiveAmount = qc.CalculateEffectivePrice(amt, p.Discount(), at)
			line.Savings = qc.CalculateSavings(amt, p.Discount(), at)
		}
		line.EffectiveRate = p.EffectiveRate(at)
		line.DiscountApplied = p.Discount() != nil && p.Discount().IsValidAt(at)
		q.Prices = append(q.Prices, line)
	}

	for _, s := range schedules {
		if s.Structure == nil || !s.Structure.Period().Contains(at) {
			continue
		}
		for _, cr := range s.Components {
			base := cr.Component.BaseAmount(txAmount)
			line := FeeLine{Structure: s.Structure, Component: cr.Component, BaseAmount: base, Amount: base}
			if rule := firstMatchingRule(cr.Rules, attrs); rule != nil {
				line.Amount = rule.Apply(base)
				line.AppliedRule = rule
			}
			q.TotalFee = q.TotalFee.Add(line.Amount)
			q.Fees = append(q.Fees, line)
		}
	}

	return q, nil
}

func firstMatchingRule(rules []*domain.FeeRule, attrs map[string]string) *domain.FeeRule {
	sorted := append([]*domain.FeeRule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	for _, r := range sorted {
		if r.Matches(attrs) {
			return r
		}
	}
	return nil
}

func transactionAmount(attrs map[string]string) (*domain.Money, error) {
	raw, ok := attrs[AttrAmount]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	m, err := domain.ParseMoney(raw)
	if err != nil {
		return nil, err
	}
	if m.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	return m, nil
}
