package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_pricing"
)

type PricingRepo struct{}

func NewPricingRepo() *PricingRepo {
	return &PricingRepo{}
}

func buildPricingInsertValues(p *domain.Pricing) map[string]interface{} {
	num, den := moneyColumns(p.Amount())
	values := map[string]interface{}{
		m_pricing.ColProductID:         p.ProductID(),
		m_pricing.ColPricingID:         p.ID(),
		m_pricing.ColName:              p.Name(),
		m_pricing.ColPricingType:       string(p.PricingType()),
		m_pricing.ColAmountNumerator:   num,
		m_pricing.ColAmountDenominator: den,
		m_pricing.ColRate:              rateNumeric(p.Rate()),
		m_pricing.ColEffectiveFrom:     p.Period().From,
		m_pricing.ColEffectiveTo:       nullableTime(p.Period().To),
		m_pricing.ColCreatedAt:         p.CreatedAt().UTC(),
		m_pricing.ColUpdatedAt:         p.UpdatedAt().UTC(),
	}
	putDiscount(values, p.Discount())
	return values
}

// putDiscount writes the three discount columns, or NULLs them.
func putDiscount(values map[string]interface{}, d *domain.Discount) {
	if d == nil {
		values[m_pricing.ColDiscountPercent] = spanner.NullNumeric{}
		values[m_pricing.ColDiscountStartDate] = nil
		values[m_pricing.ColDiscountEndDate] = nil
		return
	}
	values[m_pricing.ColDiscountPercent] = rateNumeric(d.Percentage())
	values[m_pricing.ColDiscountStartDate] = d.StartDate()
	values[m_pricing.ColDiscountEndDate] = d.EndDate()
}

func buildPricingUpdateValues(p *domain.Pricing) map[string]interface{} {
	if p == nil || !p.Changes().HasChanges() {
		return nil
	}
	ch := p.Changes()
	updates := map[string]interface{}{}

	if ch.Dirty(domain.FieldName) {
		updates[m_pricing.ColName] = p.Name()
	}
	if ch.Dirty(domain.FieldAmount) {
		num, den := moneyColumns(p.Amount())
		updates[m_pricing.ColAmountNumerator] = num
		updates[m_pricing.ColAmountDenominator] = den
	}
	if ch.Dirty(domain.FieldRate) {
		updates[m_pricing.ColRate] = rateNumeric(p.Rate())
	}
	if ch.Dirty(domain.FieldDiscount) {
		putDiscount(updates, p.Discount())
	}
	if ch.Dirty(domain.FieldEffectiveFrom) {
		updates[m_pricing.ColEffectiveFrom] = p.Period().From
	}
	if ch.Dirty(domain.FieldEffectiveTo) {
		updates[m_pricing.ColEffectiveTo] = nullableTime(p.Period().To)
	}

	if len(updates) == 0 {
		return nil
	}
	updates[m_pricing.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

func (r *PricingRepo) InsertMut(p *domain.Pricing) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_pricing.InsertMutation(buildPricingInsertValues(p))
}

func (r *PricingRepo) UpdateMut(p *domain.Pricing) *spanner.Mutation {
	updates := buildPricingUpdateValues(p)
	if updates == nil {
		return nil
	}
	return m_pricing.UpdateMutation(p.ProductID(), p.ID(), updates)
}

func (r *PricingRepo) DeleteMut(productID, pricingID string) *spanner.Mutation {
	return m_pricing.DeleteMutation(productID, pricingID)
}
