package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	FieldPricingType   = "pricing_type"
	FieldAmount        = "amount"
	FieldRate          = "rate"
	FieldDiscount      = "discount"
	FieldEffectiveFrom = "effective_from"
	FieldEffectiveTo   = "effective_to"
)

// PricingType tells whether a pricing entry carries an amount or a rate.
type PricingType string

const (
	// PricingTypeFixed is a fixed price such as a monthly maintenance charge.
	PricingTypeFixed PricingType = "fixed"
	// PricingTypeRate is a percentage such as an interest rate.
	PricingTypeRate PricingType = "rate"
)

func ParsePricingType(s string) (PricingType, error) {
	switch t := PricingType(strings.ToLower(strings.TrimSpace(s))); t {
	case PricingTypeFixed, PricingTypeRate:
		return t, nil
	case "":
		return "", RequiredError("pricing_type")
	}
	return "", InvalidError("pricing_type", "must be fixed or rate")
}

// PricingInput carries the fields of a new pricing entry.
type PricingInput struct {
	Name          string
	PricingType   string
	Amount        *Money
	Rate          *Rate
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// PricingPatch is a partial update. ClearEffectiveTo makes the entry open-ended.
type PricingPatch struct {
	Name             *string
	Amount           *Money
	Rate             *Rate
	EffectiveFrom    *time.Time
	EffectiveTo      *time.Time
	ClearEffectiveTo bool
}

// Pricing is a time-bounded price or rate attached to a product.
type Pricing struct {
	id          string
	productID   string
	name        string
	pricingType PricingType
	amount      *Money
	rate        *Rate
	discount    *Discount
	period      Period
	createdAt   time.Time
	updatedAt   time.Time
	eventLog
}

// NewPricing validates the input and creates a pricing entry.
func NewPricing(id, productID string, in PricingInput, now time.Time) (*Pricing, error) {
	name, err := requiredText("name", in.Name, 255)
	if err != nil {
		return nil, err
	}
	pt, err := ParsePricingType(in.PricingType)
	if err != nil {
		return nil, err
	}
	if err := validatePricingValue(pt, in.Amount, in.Rate); err != nil {
		return nil, err
	}
	period, err := NewPeriod(in.EffectiveFrom, in.EffectiveTo)
	if err != nil {
		return nil, err
	}

	p := &Pricing{
		id:          id,
		productID:   productID,
		name:        name,
		pricingType: pt,
		amount:      in.Amount,
		rate:        in.Rate,
		period:      period,
		createdAt:   now,
		updatedAt:   now,
		eventLog:    newEventLog(),
	}
	p.record(newEntityEvent(EntityPricing, ActionCreated, productID, id, map[string]any{
		"name":         name,
		"pricing_type": string(pt),
	}, now))
	return p, nil
}

// ReconstructPricing rebuilds a pricing entry from persisted state.
func ReconstructPricing(id, productID string, in PricingInput, discount *Discount, createdAt, updatedAt time.Time) *Pricing {
	period := Period{From: in.EffectiveFrom, To: in.EffectiveTo}
	return &Pricing{
		id:          id,
		productID:   productID,
		name:        in.Name,
		pricingType: PricingType(in.PricingType),
		amount:      in.Amount,
		rate:        in.Rate,
		discount:    discount,
		period:      period,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		eventLog:    newEventLog(),
	}
}

func (p *Pricing) ID() string               { return p.id }
func (p *Pricing) ProductID() string        { return p.productID }
func (p *Pricing) Name() string             { return p.name }
func (p *Pricing) PricingType() PricingType { return p.pricingType }
func (p *Pricing) Amount() *Money           { return p.amount }
func (p *Pricing) Rate() *Rate              { return p.rate }
func (p *Pricing) Discount() *Discount      { return p.discount }
func (p *Pricing) Period() Period           { return p.period }
func (p *Pricing) CreatedAt() time.Time     { return p.createdAt }
func (p *Pricing) UpdatedAt() time.Time     { return p.updatedAt }

// Update applies a partial update. The pricing type never changes.
func (p *Pricing) Update(patch PricingPatch, now time.Time) error {
	changes := make(map[string]any)

	if patch.Name != nil {
		name, err := requiredText("name", *patch.Name, 255)
		if err != nil {
			return err
		}
		if name != p.name {
			p.name = name
			p.changes.MarkDirty(FieldName)
			changes[FieldName] = name
		}
	}

	amount, rate := p.amount, p.rate
	if patch.Amount != nil {
		amount = patch.Amount
	}
	if patch.Rate != nil {
		rate = patch.Rate
	}
	if patch.Amount != nil || patch.Rate != nil {
		if err := validatePricingValue(p.pricingType, amount, rate); err != nil {
			return err
		}
	}
	if patch.Amount != nil && (p.amount == nil || !patch.Amount.Equals(p.amount)) {
		p.amount = patch.Amount
		p.changes.MarkDirty(FieldAmount)
		changes[FieldAmount] = patch.Amount.String()
	}
	if patch.Rate != nil && (p.rate == nil || !patch.Rate.Equals(p.rate)) {
		p.rate = patch.Rate
		p.changes.MarkDirty(FieldRate)
		changes[FieldRate] = patch.Rate.String()
	}

	if period, changed, err := patchPeriod(p.period, patch.EffectiveFrom, patch.EffectiveTo, patch.ClearEffectiveTo); err != nil {
		return err
	} else if changed {
		p.period = period
		p.changes.MarkDirty(FieldEffectiveFrom, FieldEffectiveTo)
		changes[FieldEffectiveFrom] = period.From
		changes[FieldEffectiveTo] = period.To
	}

	if len(changes) > 0 {
		p.updatedAt = now
		p.record(newEntityEvent(EntityPricing, ActionUpdated, p.productID, p.id, changes, now))
	}
	return nil
}

// ApplyDiscount attaches a discount. The owning product must be active,
// the discount must be valid now, and only one discount is allowed.
func (p *Pricing) ApplyDiscount(product *Product, d *Discount, now time.Time) error {
	if product == nil || product.Status() != ProductStatusActive {
		return ErrProductNotActive
	}
	if !d.IsValidAt(now) {
		return ErrDiscountNotValid
	}
	if p.discount != nil {
		return ErrDiscountAlreadyExists
	}

	p.discount = d
	p.changes.MarkDirty(FieldDiscount)
	p.updatedAt = now
	p.record(newEntityEvent(EntityPricing, ActionDiscountApplied, p.productID, p.id, map[string]any{
		"discount_percent":    d.Percentage().String(),
		"discount_start_date": d.StartDate(),
		"discount_end_date":   d.EndDate(),
	}, now))
	return nil
}

// RemoveDiscount drops the discount. Removing a missing discount is a no-op.
func (p *Pricing) RemoveDiscount(now time.Time) {
	if p.discount == nil {
		return
	}
	p.discount = nil
	p.changes.MarkDirty(FieldDiscount)
	p.updatedAt = now
	p.record(newEntityEvent(EntityPricing, ActionDiscountRemoved, p.productID, p.id, nil, now))
}

// EffectiveAmount returns the amount after any discount valid at now.
// It returns nil for rate entries.
func (p *Pricing) EffectiveAmount(now time.Time) *Money {
	if p.amount == nil {
		return nil
	}
	if p.discount != nil && p.discount.IsValidAt(now) {
		return p.discount.ApplyTo(p.amount)
	}
	return p.amount
}

// EffectiveRate returns the rate after any discount valid at now.
// It returns nil for fixed entries.
func (p *Pricing) EffectiveRate(now time.Time) *Rate {
	if p.rate == nil {
		return nil
	}
	if p.discount != nil && p.discount.IsValidAt(now) {
		return p.discount.ApplyToRate(p.rate)
	}
	return p.rate
}

func validatePricingValue(pt PricingType, amount *Money, rate *Rate) error {
	switch pt {
	case PricingTypeFixed:
		if rate != nil {
			return InvalidError("rate", "is not allowed for fixed pricing")
		}
		return validatePositiveAmount("amount", amount)
	case PricingTypeRate:
		if amount != nil {
			return InvalidError("amount", "is not allowed for rate pricing")
		}
		return validateRate("rate", rate)
	}
	return InvalidError("pricing_type", "is unknown")
}

// patchPeriod merges optional bounds into an existing period and validates the result.
func patchPeriod(cur Period, from, to *time.Time, clearTo bool) (Period, bool, error) {
	if from == nil && to == nil && !clearTo {
		return cur, false, nil
	}
	nextFrom := cur.From
	if from != nil {
		nextFrom = *from
	}
	nextTo := cur.To
	if clearTo {
		nextTo = nil
	}
	if to != nil {
		nextTo = to
	}
	next, err := NewPeriod(nextFrom, nextTo)
	if err != nil {
		return cur, false, err
	}
	return next, !next.Equal(cur), nil
}

// requiredText trims s and enforces presence and a maximum length in
// characters.
func requiredText(field, s string, max int) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", RequiredError(field)
	}
	if utf8.RuneCountInString(v) > max {
		return "", InvalidError(field, "is too long")
	}
	return v, nil
}

// optionalText trims s and enforces a maximum length.
func optionalText(field, s string, max int) (string, error) {
	v := strings.TrimSpace(s)
	if utf8.RuneCountInString(v) > max {
		return "", InvalidError(field, "is too long")
	}
	return v, nil
}
