package dto

import (
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain/services"
)

func FromMoney(m *domain.Money) *Money {
	if m == nil {
		return nil
	}
	return &Money{Amount: m.String(), Numerator: m.Numerator(), Denominator: m.Denominator()}
}

func rateString(r *domain.Rate) *string {
	if r == nil {
		return nil
	}
	s := r.String()
	return &s
}

func FromProduct(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID(),
		Code:        p.Code(),
		Name:        p.Name(),
		Description: p.Description(),
		ProductType: string(p.ProductType()),
		Category:    p.Category(),
		Currency:    p.Currency(),
		Status:      string(p.Status()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		ArchivedAt:  p.ArchivedAt(),
	}
}

// Localize overlays a localization on a product view.
func (p *ProductDTO) Localize(l *domain.Localization) {
	if l == nil {
		return
	}
	p.Name = l.Name()
	p.Description = l.Description()
	p.Locale = l.Locale()
}

func FromPricing(p *domain.Pricing) *PricingDTO {
	out := &PricingDTO{
		ID:            p.ID(),
		ProductID:     p.ProductID(),
		Name:          p.Name(),
		PricingType:   string(p.PricingType()),
		Amount:        FromMoney(p.Amount()),
		Rate:          rateString(p.Rate()),
		EffectiveFrom: p.Period().From,
		EffectiveTo:   p.Period().To,
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
	if d := p.Discount(); d != nil {
		out.Discount = &DiscountDTO{
			Percentage: d.Percentage().String(),
			StartDate:  d.StartDate(),
			EndDate:    d.EndDate(),
		}
	}
	return out
}

func FromLifecycle(e *domain.LifecycleEntry) *LifecycleDTO {
	return &LifecycleDTO{
		ID:            e.ID(),
		ProductID:     e.ProductID(),
		Status:        string(e.Status()),
		EffectiveFrom: e.Period().From,
		EffectiveTo:   e.Period().To,
		Reason:        e.Reason(),
		CreatedAt:     e.CreatedAt(),
		UpdatedAt:     e.UpdatedAt(),
	}
}

func FromLimit(l *domain.Limit) *LimitDTO {
	return &LimitDTO{
		ID:        l.ID(),
		ProductID: l.ProductID(),
		LimitType: string(l.LimitType()),
		Period:    string(l.Period()),
		MinAmount: FromMoney(l.MinAmount()),
		MaxAmount: FromMoney(l.MaxAmount()),
		MaxCount:  l.MaxCount(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

func FromDocument(d *domain.DocumentRequirement) *DocumentRequirementDTO {
	return &DocumentRequirementDTO{
		ID:           d.ID(),
		ProductID:    d.ProductID(),
		DocumentType: d.DocumentType(),
		Description:  d.Description(),
		Mandatory:    d.Mandatory(),
		ValidityDays: d.ValidityDays(),
		CreatedAt:    d.CreatedAt(),
		UpdatedAt:    d.UpdatedAt(),
	}
}

func FromLocalization(l *domain.Localization) *LocalizationDTO {
	return &LocalizationDTO{
		ID:          l.ID(),
		ProductID:   l.ProductID(),
		Locale:      l.Locale(),
		Name:        l.Name(),
		Description: l.Description(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func FromFeeStructure(fs *domain.FeeStructure) *FeeStructureDTO {
	return &FeeStructureDTO{
		ID:            fs.ID(),
		ProductID:     fs.ProductID(),
		Name:          fs.Name(),
		Description:   fs.Description(),
		EffectiveFrom: fs.Period().From,
		EffectiveTo:   fs.Period().To,
		CreatedAt:     fs.CreatedAt(),
		UpdatedAt:     fs.UpdatedAt(),
	}
}

func FromFeeComponent(c *domain.FeeComponent) *FeeComponentDTO {
	return &FeeComponentDTO{
		ID:             c.ID(),
		ProductID:      c.ProductID(),
		FeeStructureID: c.FeeStructureID(),
		Name:           c.Name(),
		FeeType:        string(c.FeeType()),
		Amount:         FromMoney(c.Amount()),
		Rate:           rateString(c.Rate()),
		Frequency:      string(c.Frequency()),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func FromFeeRule(r *domain.FeeRule) *FeeRuleDTO {
	out := &FeeRuleDTO{
		ID:             r.ID(),
		ProductID:      r.ProductID(),
		FeeStructureID: r.FeeStructureID(),
		FeeComponentID: r.FeeComponentID(),
		Name:           r.Name(),
		Attribute:      r.Attribute(),
		Operator:       string(r.Operator()),
		Value:          r.Value(),
		Action:         string(r.Action()),
		Priority:       r.Priority(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
	if v := r.ActionValue(); v != nil {
		out.ActionValue = rateString(domain.NewRateFromRat(v))
	}
	return out
}

func FromBundle(b *domain.Bundle) *BundleDTO {
	out := &BundleDTO{
		ID:          b.ID(),
		Code:        b.Code(),
		Name:        b.Name(),
		Description: b.Description(),
		Status:      string(b.Status()),
		Items:       make([]BundleItemDTO, 0, len(b.Items())),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	for _, it := range b.Items() {
		out.Items = append(out.Items, BundleItemDTO{
			ProductID: it.ProductID,
			Mandatory: it.Mandatory,
			Position:  it.Position,
			AddedAt:   it.AddedAt,
		})
	}
	return out
}

func FromQuote(productID string, q *services.Quote) *QuoteDTO {
	out := &QuoteDTO{
		ProductID: productID,
		Currency:  q.Currency,
		At:        q.At,
		Prices:    make([]QuotePriceDTO, 0, len(q.Prices)),
		Fees:      make([]QuoteFeeDTO, 0, len(q.Fees)),
		TotalFee:  *FromMoney(q.TotalFee),
	}
	for _, p := range q.Prices {
		out.Prices = append(out.Prices, QuotePriceDTO{
			PricingID:       p.Pricing.ID(),
			Name:            p.Pricing.Name(),
			PricingType:     string(p.Pricing.PricingType()),
			Amount:          FromMoney(p.EffectiveAmount),
			Rate:            rateString(p.EffectiveRate),
			Savings:         FromMoney(p.Savings),
			DiscountApplied: p.DiscountApplied,
		})
	}
	for _, f := range q.Fees {
		line := QuoteFeeDTO{
			FeeStructureID: f.Structure.ID(),
			FeeComponentID: f.Component.ID(),
			Name:           f.Component.Name(),
			Frequency:      string(f.Component.Frequency()),
			BaseAmount:     *FromMoney(f.BaseAmount),
			Amount:         *FromMoney(f.Amount),
		}
		if f.AppliedRule != nil {
			id := f.AppliedRule.ID()
			action := string(f.AppliedRule.Action())
			line.AppliedRuleID = &id
			line.AppliedAction = &action
		}
		out.Fees = append(out.Fees, line)
	}
	return out
}
