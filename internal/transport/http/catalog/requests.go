package catalog

import (
	"math/big"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// Amounts, rates and rule values travel as decimal strings so no precision
// is lost on the way in.

type createProductRequest struct {
	Code        string `json:"code" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	ProductType string `json:"product_type" validate:"required,oneof=account loan card deposit insurance investment"`
	Category    string `json:"category" validate:"required,max=100"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

func (r createProductRequest) details() domain.ProductDetails {
	return domain.ProductDetails{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		ProductType: r.ProductType,
		Category:    r.Category,
		Currency:    r.Currency,
	}
}

type updateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Currency    *string `json:"currency" validate:"omitempty,len=3"`
}

type pricingRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	PricingType   string     `json:"pricing_type" validate:"required,oneof=fixed rate"`
	Amount        *string    `json:"amount" validate:"omitempty,numeric"`
	Rate          *string    `json:"rate" validate:"omitempty,numeric"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

func (r pricingRequest) input() (domain.PricingInput, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return domain.PricingInput{}, err
	}
	rate, err := parseRate(r.Rate)
	if err != nil {
		return domain.PricingInput{}, err
	}
	return domain.PricingInput{
		Name:          r.Name,
		PricingType:   r.PricingType,
		Amount:        amount,
		Rate:          rate,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
	}, nil
}

type pricingPatchRequest struct {
	Name             *string    `json:"name" validate:"omitempty,max=255"`
	Amount           *string    `json:"amount" validate:"omitempty,numeric"`
	Rate             *string    `json:"rate" validate:"omitempty,numeric"`
	EffectiveFrom    *time.Time `json:"effective_from"`
	EffectiveTo      *time.Time `json:"effective_to"`
	ClearEffectiveTo bool       `json:"clear_effective_to"`
}

func (r pricingPatchRequest) patch() (domain.PricingPatch, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return domain.PricingPatch{}, err
	}
	rate, err := parseRate(r.Rate)
	if err != nil {
		return domain.PricingPatch{}, err
	}
	return domain.PricingPatch{
		Name:             r.Name,
		Amount:           amount,
		Rate:             rate,
		EffectiveFrom:    r.EffectiveFrom,
		EffectiveTo:      r.EffectiveTo,
		ClearEffectiveTo: r.ClearEffectiveTo,
	}, nil
}

type discountRequest struct {
	Percentage string    `json:"percentage" validate:"required,numeric"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
}

type lifecycleRequest struct {
	Status        string     `json:"status" validate:"required,oneof=pending active suspended retired"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time `json:"effective_to"`
	Reason        string     `json:"reason" validate:"max=1000"`
}

func (r lifecycleRequest) input() domain.LifecycleInput {
	return domain.LifecycleInput{
		Status:        r.Status,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
		Reason:        r.Reason,
	}
}

type lifecyclePatchRequest struct {
	Status           *string    `json:"status" validate:"omitempty,oneof=pending active suspended retired"`
	EffectiveFrom    *time.Time `json:"effective_from"`
	EffectiveTo      *time.Time `json:"effective_to"`
	ClearEffectiveTo bool       `json:"clear_effective_to"`
	Reason           *string    `json:"reason" validate:"omitempty,max=1000"`
}

type limitRequest struct {
	LimitType string  `json:"limit_type" validate:"required"`
	Period    string  `json:"period" validate:"required"`
	MinAmount *string `json:"min_amount" validate:"omitempty,numeric"`
	MaxAmount *string `json:"max_amount" validate:"omitempty,numeric"`
	MaxCount  *int64  `json:"max_count" validate:"omitempty,gt=0"`
}

func (r limitRequest) input() (domain.LimitInput, error) {
	lo, err := parseMoney(r.MinAmount)
	if err != nil {
		return domain.LimitInput{}, err
	}
	hi, err := parseMoney(r.MaxAmount)
	if err != nil {
		return domain.LimitInput{}, err
	}
	return domain.LimitInput{LimitType: r.LimitType, Period: r.Period, MinAmount: lo, MaxAmount: hi, MaxCount: r.MaxCount}, nil
}

type limitPatchRequest struct {
	Period         *string `json:"period"`
	MinAmount      *string `json:"min_amount" validate:"omitempty,numeric"`
	MaxAmount      *string `json:"max_amount" validate:"omitempty,numeric"`
	MaxCount       *int64  `json:"max_count" validate:"omitempty,gt=0"`
	ClearMinAmount bool    `json:"clear_min_amount"`
	ClearMaxAmount bool    `json:"clear_max_amount"`
	ClearMaxCount  bool    `json:"clear_max_count"`
}

func (r limitPatchRequest) patch() (domain.LimitPatch, error) {
	lo, err := parseMoney(r.MinAmount)
	if err != nil {
		return domain.LimitPatch{}, err
	}
	hi, err := parseMoney(r.MaxAmount)
	if err != nil {
		return domain.LimitPatch{}, err
	}
	return domain.LimitPatch{
		Period:         r.Period,
		MinAmount:      lo,
		MaxAmount:      hi,
		MaxCount:       r.MaxCount,
		ClearMinAmount: r.ClearMinAmount,
		ClearMaxAmount: r.ClearMaxAmount,
		ClearMaxCount:  r.ClearMaxCount,
	}, nil
}

type documentRequest struct {
	DocumentType string `json:"document_type" validate:"required,max=64"`
	Description  string `json:"description" validate:"max=1000"`
	Mandatory    bool   `json:"mandatory"`
	ValidityDays *int64 `json:"validity_days" validate:"omitempty,gt=0"`
}

func (r documentRequest) input() domain.DocumentInput {
	return domain.DocumentInput{
		DocumentType: r.DocumentType,
		Description:  r.Description,
		Mandatory:    r.Mandatory,
		ValidityDays: r.ValidityDays,
	}
}

type documentPatchRequest struct {
	DocumentType      *string `json:"document_type" validate:"omitempty,max=64"`
	Description       *string `json:"description" validate:"omitempty,max=1000"`
	Mandatory         *bool   `json:"mandatory"`
	ValidityDays      *int64  `json:"validity_days" validate:"omitempty,gt=0"`
	ClearValidityDays bool    `json:"clear_validity_days"`
}

type localizationRequest struct {
	Locale      string `json:"locale" validate:"required,max=35"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
}

func (r localizationRequest) input() domain.LocalizationInput {
	return domain.LocalizationInput{Locale: r.Locale, Name: r.Name, Description: r.Description}
}

type localizationPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
}

type feeStructureRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	Description   string     `json:"description" validate:"max=4000"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

func (r feeStructureRequest) input() domain.FeeStructureInput {
	return domain.FeeStructureInput{
		Name:          r.Name,
		Description:   r.Description,
		EffectiveFrom: r.EffectiveFrom,
		EffectiveTo:   r.EffectiveTo,
	}
}

type feeStructurePatchRequest struct {
	Name             *string    `json:"name" validate:"omitempty,max=255"`
	Description      *string    `json:"description" validate:"omitempty,max=4000"`
	EffectiveFrom    *time.Time `json:"effective_from"`
	EffectiveTo      *time.Time `json:"effective_to"`
	ClearEffectiveTo bool       `json:"clear_effective_to"`
}

type feeComponentRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	FeeType   string  `json:"fee_type" validate:"required,oneof=flat percentage"`
	Amount    *string `json:"amount" validate:"omitempty,numeric"`
	Rate      *string `json:"rate" validate:"omitempty,numeric"`
	Frequency string  `json:"frequency" validate:"required"`
}

func (r feeComponentRequest) input() (domain.FeeComponentInput, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return domain.FeeComponentInput{}, err
	}
	rate, err := parseRate(r.Rate)
	if err != nil {
		return domain.FeeComponentInput{}, err
	}
	return domain.FeeComponentInput{Name: r.Name, FeeType: r.FeeType, Amount: amount, Rate: rate, Frequency: r.Frequency}, nil
}

type feeComponentPatchRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Amount    *string `json:"amount" validate:"omitempty,numeric"`
	Rate      *string `json:"rate" validate:"omitempty,numeric"`
	Frequency *string `json:"frequency"`
}

func (r feeComponentPatchRequest) patch() (domain.FeeComponentPatch, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return domain.FeeComponentPatch{}, err
	}
	rate, err := parseRate(r.Rate)
	if err != nil {
		return domain.FeeComponentPatch{}, err
	}
	return domain.FeeComponentPatch{Name: r.Name, Amount: amount, Rate: rate, Frequency: r.Frequency}, nil
}

type feeRuleRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Attribute   string  `json:"attribute" validate:"required,max=100"`
	Operator    string  `json:"operator" validate:"required,oneof=eq ne gt gte lt lte"`
	Value       string  `json:"value" validate:"required,max=255"`
	Action      string  `json:"action" validate:"required,oneof=waive discount override"`
	ActionValue *string `json:"action_value" validate:"omitempty,numeric"`
	Priority    int64   `json:"priority" validate:"gte=0"`
}

func (r feeRuleRequest) input() (domain.FeeRuleInput, error) {
	v, err := parseDecimal("action_value", r.ActionValue)
	if err != nil {
		return domain.FeeRuleInput{}, err
	}
	return domain.FeeRuleInput{
		Name:        r.Name,
		Attribute:   r.Attribute,
		Operator:    r.Operator,
		Value:       r.Value,
		Action:      r.Action,
		ActionValue: v,
		Priority:    r.Priority,
	}, nil
}

type feeRulePatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Attribute   *string `json:"attribute" validate:"omitempty,max=100"`
	Operator    *string `json:"operator" validate:"omitempty,oneof=eq ne gt gte lt lte"`
	Value       *string `json:"value" validate:"omitempty,max=255"`
	Action      *string `json:"action" validate:"omitempty,oneof=waive discount override"`
	ActionValue *string `json:"action_value" validate:"omitempty,numeric"`
	Priority    *int64  `json:"priority" validate:"omitempty,gte=0"`
}

func (r feeRulePatchRequest) patch() (domain.FeeRulePatch, error) {
	v, err := parseDecimal("action_value", r.ActionValue)
	if err != nil {
		return domain.FeeRulePatch{}, err
	}
	return domain.FeeRulePatch{
		Name:        r.Name,
		Attribute:   r.Attribute,
		Operator:    r.Operator,
		Value:       r.Value,
		Action:      r.Action,
		ActionValue: v,
		Priority:    r.Priority,
	}, nil
}

type bundleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Mandatory bool   `json:"mandatory"`
	Position  int64  `json:"position" validate:"gte=0"`
}

type bundleRequest struct {
	Code        string              `json:"code" validate:"required,max=64"`
	Name        string              `json:"name" validate:"required,max=255"`
	Description string              `json:"description" validate:"max=4000"`
	Items       []bundleItemRequest `json:"items" validate:"dive"`
}

type bundlePatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft active retired"`
}

type quoteRequest struct {
	Attributes map[string]string `json:"attributes"`
	At         *time.Time        `json:"at"`
}

func parseMoney(s *string) (*domain.Money, error) {
	if s == nil {
		return nil, nil
	}
	return domain.ParseMoney(*s)
}

func parseRate(s *string) (*domain.Rate, error) {
	if s == nil {
		return nil, nil
	}
	return domain.ParseRate(*s)
}

func parseDecimal(field string, s *string) (*big.Rat, error) {
	if s == nil {
		return nil, nil
	}
	v, ok := new(big.Rat).SetString(*s)
	if !ok {
		return nil, domain.InvalidError(field, "is not a decimal")
	}
	return v, nil
}
