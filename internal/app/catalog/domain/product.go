package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// Field constants for change tracking
const (
	FieldCode        = "code"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldCurrency    = "currency"
	FieldStatus      = "status"
	FieldArchivedAt  = "archived_at"
)

// ProductStatus represents the catalog state of a product.
type ProductStatus string

const (
	// ProductStatusDraft indicates a product that is being prepared.
	ProductStatusDraft ProductStatus = "draft"

	// ProductStatusActive indicates a product offered to customers.
	ProductStatusActive ProductStatus = "active"

	// ProductStatusInactive indicates a product temporarily withdrawn.
	ProductStatusInactive ProductStatus = "inactive"

	// ProductStatusArchived indicates a product that has been soft-deleted.
	ProductStatusArchived ProductStatus = "archived"
)

// ProductType classifies financial products.
type ProductType string

const (
	ProductTypeAccount    ProductType = "account"
	ProductTypeLoan       ProductType = "loan"
	ProductTypeCard       ProductType = "card"
	ProductTypeDeposit    ProductType = "deposit"
	ProductTypeInsurance  ProductType = "insurance"
	ProductTypeInvestment ProductType = "investment"
)

// ParseProductType validates a product type string.
func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(strings.ToLower(strings.TrimSpace(s))); t {
	case ProductTypeAccount, ProductTypeLoan, ProductTypeCard,
		ProductTypeDeposit, ProductTypeInsurance, ProductTypeInvestment:
		return t, nil
	case "":
		return "", RequiredError("product_type")
	}
	return "", InvalidError("product_type", "must be one of account, loan, card, deposit, insurance, investment")
}

// ParseProductStatus validates a status used as a list filter.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch st := ProductStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive, ProductStatusArchived:
		return st, nil
	case "":
		return "", RequiredError("status")
	}
	return "", InvalidError("status", "must be one of draft, active, inactive, archived")
}

// ProductDetails carries the user-provided fields of a new product.
type ProductDetails struct {
	Code        string
	Name        string
	Description string
	ProductType string
	Category    string
	Currency    string
}

// ProductPatch carries a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Currency    *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.Currency == nil
}

// Product is the aggregate root of the catalog. Every other catalog entity
// except bundles hangs off a product.
type Product struct {
	id          string
	code        string
	name        string
	description string
	productType ProductType
	category    string
	currency    string
	status      ProductStatus
	createdAt   time.Time
	updatedAt   time.Time
	archivedAt  *time.Time
	eventLog
}

// NewProduct validates details and creates a product in Draft status.
func NewProduct(id string, d ProductDetails, now time.Time) (*Product, error) {
	code, err := normalizeCode("code", d.Code)
	if err != nil {
		return nil, err
	}
	if err := validateProductName(d.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(d.Description); err != nil {
		return nil, err
	}
	pt, err := ParseProductType(d.ProductType)
	if err != nil {
		return nil, err
	}
	if err := validateProductCategory(d.Category); err != nil {
		return nil, err
	}
	cur, err := NormalizeCurrency(d.Currency)
	if err != nil {
		return nil, err
	}

	p := &Product{
		id:          id,
		code:        code,
		name:        strings.TrimSpace(d.Name),
		description: strings.TrimSpace(d.Description),
		productType: pt,
		category:    strings.TrimSpace(d.Category),
		currency:    cur,
		status:      ProductStatusDraft,
		createdAt:   now,
		updatedAt:   now,
		eventLog:    newEventLog(),
	}

	p.record(&ProductCreatedEvent{
		ProductID:   p.id,
		Code:        p.code,
		Name:        p.name,
		ProductType: p.productType,
		Category:    p.category,
		Currency:    p.currency,
		CreatedAt:   now,
	})
	return p, nil
}

// ReconstructProduct rebuilds a Product from persisted state.
func ReconstructProduct(
	id, code, name, description string,
	productType ProductType,
	category, currency string,
	status ProductStatus,
	createdAt, updatedAt time.Time,
	archivedAt *time.Time,
) *Product {
	return &Product{
		id:          id,
		code:        code,
		name:        name,
		description: description,
		productType: productType,
		category:    category,
		currency:    currency,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		archivedAt:  archivedAt,
		eventLog:    newEventLog(),
	}
}

// Getters

func (p *Product) ID() string               { return p.id }
func (p *Product) Code() string             { return p.code }
func (p *Product) Name() string             { return p.name }
func (p *Product) Description() string      { return p.description }
func (p *Product) ProductType() ProductType { return p.productType }
func (p *Product) Category() string         { return p.category }
func (p *Product) Currency() string         { return p.currency }
func (p *Product) Status() ProductStatus    { return p.status }
func (p *Product) CreatedAt() time.Time     { return p.createdAt }
func (p *Product) UpdatedAt() time.Time     { return p.updatedAt }
func (p *Product) ArchivedAt() *time.Time   { return p.archivedAt }
func (p *Product) IsActive() bool           { return p.status == ProductStatusActive }
func (p *Product) IsArchived() bool         { return p.status == ProductStatusArchived }

// UpdateDetails applies the non-nil fields of the patch.
// An event is only recorded when a value actually changed.
func (p *Product) UpdateDetails(patch ProductPatch, now time.Time) error {
	if p.status == ProductStatusArchived {
		return ErrProductArchived
	}

	changes := make(map[string]any)

	if patch.Name != nil {
		if err := validateProductName(*patch.Name); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Name); v != p.name {
			p.name = v
			p.changes.MarkDirty(FieldName)
			changes[FieldName] = v
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Description); v != p.description {
			p.description = v
			p.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}
	if patch.Category != nil {
		if err := validateProductCategory(*patch.Category); err != nil {
			return err
		}
		if v := strings.TrimSpace(*patch.Category); v != p.category {
			p.category = v
			p.changes.MarkDirty(FieldCategory)
			changes[FieldCategory] = v
		}
	}
	if patch.Currency != nil {
		v, err := NormalizeCurrency(*patch.Currency)
		if err != nil {
			return err
		}
		if v != p.currency {
			p.currency = v
			p.changes.MarkDirty(FieldCurrency)
			changes[FieldCurrency] = v
		}
	}

	if len(changes) > 0 {
		p.updatedAt = now
		p.record(&ProductUpdatedEvent{ProductID: p.id, UpdatedAt: now, Changes: changes})
	}
	return nil
}

// Activate makes the product available to customers.
func (p *Product) Activate(now time.Time) error {
	if p.status == ProductStatusArchived {
		return ErrProductArchived
	}
	if p.status == ProductStatusActive {
		return ErrProductAlreadyActive
	}
	p.transition(ProductStatusActive, now)
	return nil
}

// Deactivate withdraws the product temporarily.
func (p *Product) Deactivate(now time.Time) error {
	if p.status == ProductStatusArchived {
		return ErrProductArchived
	}
	if p.status == ProductStatusInactive {
		return ErrProductAlreadyInactive
	}
	p.transition(ProductStatusInactive, now)
	return nil
}

// Archive soft-deletes the product. Active products must be deactivated first.
func (p *Product) Archive(now time.Time) error {
	if p.status == ProductStatusActive {
		return ErrCannotArchiveActiveProduct
	}
	if p.status == ProductStatusArchived {
		return ErrProductArchived
	}
	p.archivedAt = &now
	p.changes.MarkDirty(FieldArchivedAt)
	p.transition(ProductStatusArchived, now)
	return nil
}

func (p *Product) transition(to ProductStatus, now time.Time) {
	from := p.status
	p.status = to
	p.changes.MarkDirty(FieldStatus)
	p.updatedAt = now
	p.record(&ProductStatusChangedEvent{ProductID: p.id, From: from, To: to, ChangedAt: now})
}

// EnsureMutable rejects changes to the children of an archived product.
func (p *Product) EnsureMutable() error {
	if p.status == ProductStatusArchived {
		return ErrProductArchived
	}
	return nil
}

// Validation helpers

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return RequiredError("name")
	}
	if utf8.RuneCountInString(trimmed) > 255 {
		return InvalidError("name", "exceeds 255 characters")
	}
	return nil
}

func validateProductCategory(category string) error {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return RequiredError("category")
	}
	if utf8.RuneCountInString(trimmed) > 100 {
		return InvalidError("category", "exceeds 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > 4000 {
		return InvalidError("description", "exceeds 4000 characters")
	}
	return nil
}

// normalizeCode trims and upper-cases business codes.
func normalizeCode(field, code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return "", RequiredError(field)
	}
	if utf8.RuneCountInString(c) > 64 {
		return "", InvalidError(field, "exceeds 64 characters")
	}
	if strings.ContainsAny(c, " \t\n") {
		return "", InvalidError(field, "cannot contain whitespace")
	}
	return c, nil
}

// NormalizeCurrency validates an ISO 4217 code and returns it upper-cased.
func NormalizeCurrency(code string) (string, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return "", RequiredError("currency")
	}
	unit, err := currency.ParseISO(strings.ToUpper(c))
	if err != nil {
		return "", ErrInvalidCurrency
	}
	return unit.String(), nil
}
