package queries

import (
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle"
	"github.com/murkotick/financial-catalog-service/internal/models/m_bundle_item"
	"github.com/murkotick/financial-catalog-service/internal/models/m_document"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_component"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_rule"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_structure"
	"github.com/murkotick/financial-catalog-service/internal/models/m_lifecycle"
	"github.com/murkotick/financial-catalog-service/internal/models/m_limit"
	"github.com/murkotick/financial-catalog-service/internal/models/m_localization"
	"github.com/murkotick/financial-catalog-service/internal/models/m_pricing"
	"github.com/murkotick/financial-catalog-service/internal/models/m_product"
)

// Row to domain conversions. Stored values were validated on the way in, so
// only structurally broken rows (a zero denominator) produce an error.

func moneyFromColumns(num, den spanner.NullInt64) (*domain.Money, error) {
	if !num.Valid || !den.Valid {
		return nil, nil
	}
	m, err := domain.NewMoney(num.Int64, den.Int64)
	if err != nil {
		return nil, fmt.Errorf("decode amount %d/%d: %w", num.Int64, den.Int64, err)
	}
	return m, nil
}

func rateFromNumeric(n spanner.NullNumeric) *domain.Rate {
	if !n.Valid {
		return nil
	}
	return domain.NewRateFromRat(&n.Numeric)
}

func periodFromColumns(from time.Time, to spanner.NullTime) domain.Period {
	p := domain.Period{From: from.UTC()}
	if to.Valid {
		t := to.Time.UTC()
		p.To = &t
	}
	return p
}

func stringOrEmpty(s spanner.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.StringVal
}

func int64Ptr(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func productFromRow(r m_product.Row) *domain.Product {
	return domain.ReconstructProduct(
		r.ProductID, r.Code, r.Name, stringOrEmpty(r.Description),
		domain.ProductType(r.ProductType),
		r.Category, r.Currency,
		domain.ProductStatus(r.Status),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
		timePtr(r.ArchivedAt),
	)
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func pricingFromRow(r m_pricing.Row) (*domain.Pricing, error) {
	amount, err := moneyFromColumns(r.AmountNumerator, r.AmountDenominator)
	if err != nil {
		return nil, err
	}

	var discount *domain.Discount
	if r.DiscountPercent.Valid {
		discount, err = domain.NewDiscount(
			domain.NewRateFromRat(&r.DiscountPercent.Numeric),
			r.DiscountStartDate.Time,
			r.DiscountEndDate.Time,
		)
		if err != nil {
			return nil, fmt.Errorf("decode discount of pricing %s: %w", r.PricingID, err)
		}
	}

	period := periodFromColumns(r.EffectiveFrom, r.EffectiveTo)
	return domain.ReconstructPricing(r.PricingID, r.ProductID, domain.PricingInput{
		Name:          r.Name,
		PricingType:   r.PricingType,
		Amount:        amount,
		Rate:          rateFromNumeric(r.Rate),
		EffectiveFrom: period.From,
		EffectiveTo:   period.To,
	}, discount, r.CreatedAt.UTC(), r.UpdatedAt.UTC()), nil
}

func lifecycleFromRow(r m_lifecycle.Row) *domain.LifecycleEntry {
	return domain.ReconstructLifecycleEntry(
		r.LifecycleID, r.ProductID,
		domain.LifecycleStatus(r.Status),
		periodFromColumns(r.EffectiveFrom, r.EffectiveTo),
		stringOrEmpty(r.Reason),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func limitFromRow(r m_limit.Row) (*domain.Limit, error) {
	minAmount, err := moneyFromColumns(r.MinAmountNumerator, r.MinAmountDenominator)
	if err != nil {
		return nil, err
	}
	maxAmount, err := moneyFromColumns(r.MaxAmountNumerator, r.MaxAmountDenominator)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructLimit(
		r.LimitID, r.ProductID,
		domain.LimitType(r.LimitType), domain.LimitPeriod(r.Period),
		minAmount, maxAmount, int64Ptr(r.MaxCount),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	), nil
}

func documentFromRow(r m_document.Row) *domain.DocumentRequirement {
	return domain.ReconstructDocumentRequirement(
		r.DocumentID, r.ProductID, r.DocumentType, stringOrEmpty(r.Description),
		r.Mandatory, int64Ptr(r.ValidityDays),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func localizationFromRow(r m_localization.Row) *domain.Localization {
	return domain.ReconstructLocalization(
		r.LocalizationID, r.ProductID, r.Locale, r.Name, stringOrEmpty(r.Description),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func feeStructureFromRow(r m_fee_structure.Row) *domain.FeeStructure {
	return domain.ReconstructFeeStructure(
		r.FeeStructureID, r.ProductID, r.Name, stringOrEmpty(r.Description),
		periodFromColumns(r.EffectiveFrom, r.EffectiveTo),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func feeComponentFromRow(r m_fee_component.Row) (*domain.FeeComponent, error) {
	amount, err := moneyFromColumns(r.AmountNumerator, r.AmountDenominator)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructFeeComponent(
		r.FeeComponentID, r.ProductID, r.FeeStructureID, r.Name,
		domain.FeeType(r.FeeType), amount, rateFromNumeric(r.Rate),
		domain.FeeFrequency(r.Frequency),
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	), nil
}

func feeRuleFromRow(r m_fee_rule.Row) *domain.FeeRule {
	in := domain.FeeRuleInput{
		Name:      r.Name,
		Attribute: r.Attribute,
		Operator:  r.Operator,
		Value:     r.Value,
		Action:    r.Action,
		Priority:  r.Priority,
	}
	if r.ActionValue.Valid {
		in.ActionValue = new(big.Rat).Set(&r.ActionValue.Numeric)
	}
	return domain.ReconstructFeeRule(
		r.FeeRuleID, r.ProductID, r.FeeStructureID, r.FeeComponentID, in,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func bundleFromRows(r m_bundle.Row, items []m_bundle_item.Row) *domain.Bundle {
	out := make([]domain.BundleItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.BundleItem{
			ProductID: it.ProductID,
			Mandatory: it.Mandatory,
			Position:  it.Position,
			AddedAt:   it.AddedAt.UTC(),
		})
	}
	return domain.ReconstructBundle(
		r.BundleID, r.Code, r.Name, stringOrEmpty(r.Description),
		domain.BundleStatus(r.Status), out,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}
