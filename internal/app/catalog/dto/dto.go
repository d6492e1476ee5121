// Package dto holds the externally facing views of catalog entities.
package dto

import "time"

// Money is an exact amount. Amount is the decimal rendering with two
// decimals; Numerator/Denominator carry the exact value.
type Money struct {
	Amount      string `json:"amount"`
	Numerator   int64  `json:"numerator"`
	Denominator int64  `json:"denominator"`
}

type ProductDTO struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ProductType string     `json:"product_type"`
	Category    string     `json:"category"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Locale      string     `json:"locale,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

type DiscountDTO struct {
	Percentage string    `json:"percentage"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

type PricingDTO struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"product_id"`
	Name          string       `json:"name"`
	PricingType   string       `json:"pricing_type"`
	Amount        *Money       `json:"amount,omitempty"`
	Rate          *string      `json:"rate,omitempty"`
	Discount      *DiscountDTO `json:"discount,omitempty"`
	EffectiveFrom time.Time    `json:"effective_from"`
	EffectiveTo   *time.Time   `json:"effective_to,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type LifecycleDTO struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	Status        string     `json:"status"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type LimitDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	LimitType string    `json:"limit_type"`
	Period    string    `json:"period"`
	MinAmount *Money    `json:"min_amount,omitempty"`
	MaxAmount *Money    `json:"max_amount,omitempty"`
	MaxCount  *int64    `json:"max_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DocumentRequirementDTO struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	DocumentType string    `json:"document_type"`
	Description  string    `json:"description,omitempty"`
	Mandatory    bool      `json:"mandatory"`
	ValidityDays *int64    `json:"validity_days,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LocalizationDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Locale      string    `json:"locale"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type FeeStructureDTO struct {
	ID            string            `json:"id"`
	ProductID     string            `json:"product_id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	EffectiveFrom time.Time         `json:"effective_from"`
	EffectiveTo   *time.Time        `json:"effective_to,omitempty"`
	Components    []FeeComponentDTO `json:"components,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type FeeComponentDTO struct {
	ID             string       `json:"id"`
	ProductID      string       `json:"product_id"`
	FeeStructureID string       `json:"fee_structure_id"`
	Name           string       `json:"name"`
	FeeType        string       `json:"fee_type"`
	Amount         *Money       `json:"amount,omitempty"`
	Rate           *string      `json:"rate,omitempty"`
	Frequency      string       `json:"frequency"`
	Rules          []FeeRuleDTO `json:"rules,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type FeeRuleDTO struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	FeeStructureID string    `json:"fee_structure_id"`
	FeeComponentID string    `json:"fee_component_id"`
	Name           string    `json:"name"`
	Attribute      string    `json:"attribute"`
	Operator       string    `json:"operator"`
	Value          string    `json:"value"`
	Action         string    `json:"action"`
	ActionValue    *string   `json:"action_value,omitempty"`
	Priority       int64     `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type BundleItemDTO struct {
	ProductID string    `json:"product_id"`
	Mandatory bool      `json:"mandatory"`
	Position  int64     `json:"position"`
	AddedAt   time.Time `json:"added_at"`
}

type BundleDTO struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Items       []BundleItemDTO `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type QuotePriceDTO struct {
	PricingID       string  `json:"pricing_id"`
	Name            string  `json:"name"`
	PricingType     string  `json:"pricing_type"`
	Amount          *Money  `json:"amount,omitempty"`
	Rate            *string `json:"rate,omitempty"`
	Savings         *Money  `json:"savings,omitempty"`
	DiscountApplied bool    `json:"discount_applied"`
}

type QuoteFeeDTO struct {
	FeeStructureID string  `json:"fee_structure_id"`
	FeeComponentID string  `json:"fee_component_id"`
	Name           string  `json:"name"`
	Frequency      string  `json:"frequency"`
	BaseAmount     Money   `json:"base_amount"`
	Amount         Money   `json:"amount"`
	AppliedRuleID  *string `json:"applied_rule_id,omitempty"`
	AppliedAction  *string `json:"applied_action,omitempty"`
}

type QuoteDTO struct {
	ProductID string          `json:"product_id"`
	Currency  string          `json:"currency"`
	At        time.Time       `json:"at"`
	Prices    []QuotePriceDTO `json:"prices"`
	Fees      []QuoteFeeDTO   `json:"fees"`
	TotalFee  Money           `json:"total_fee"`
}
