package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so transports can
// map by errors.Is without knowing each sentinel.
var (
	// ErrValidation marks input that is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation rejected because of the current state.
	ErrConflict = errors.New("conflict")
)

// Not found errors
var (
	ErrProductNotFound      = fmt.Errorf("product %w", ErrNotFound)
	ErrPricingNotFound      = fmt.Errorf("pricing entry %w", ErrNotFound)
	ErrLifecycleNotFound    = fmt.Errorf("lifecycle entry %w", ErrNotFound)
	ErrLimitNotFound        = fmt.Errorf("limit %w", ErrNotFound)
	ErrDocumentNotFound     = fmt.Errorf("document requirement %w", ErrNotFound)
	ErrLocalizationNotFound = fmt.Errorf("localization %w", ErrNotFound)
	ErrFeeStructureNotFound = fmt.Errorf("fee structure %w", ErrNotFound)
	ErrFeeComponentNotFound = fmt.Errorf("fee component %w", ErrNotFound)
	ErrFeeRuleNotFound      = fmt.Errorf("fee rule %w", ErrNotFound)
	ErrBundleNotFound       = fmt.Errorf("bundle %w", ErrNotFound)
	ErrBundleItemNotFound   = fmt.Errorf("bundle item %w", ErrNotFound)
)

// Product state errors
var (
	// ErrProductNotActive indicates an operation that requires an active product
	// was attempted on a product in another state.
	ErrProductNotActive = fmt.Errorf("%w: product is not active", ErrConflict)

	// ErrProductAlreadyActive indicates an attempt to activate an already active product.
	ErrProductAlreadyActive = fmt.Errorf("%w: product is already active", ErrConflict)

	// ErrProductAlreadyInactive indicates an attempt to deactivate an already inactive product.
	ErrProductAlreadyInactive = fmt.Errorf("%w: product is already inactive", ErrConflict)

	// ErrProductArchived indicates a change to an archived product.
	ErrProductArchived = fmt.Errorf("%w: product is archived", ErrConflict)

	// ErrCannotArchiveActiveProduct indicates an attempt to archive an active product.
	ErrCannotArchiveActiveProduct = fmt.Errorf("%w: cannot archive an active product", ErrConflict)
)

// Pricing and discount errors
var (
	ErrInvalidDiscountPercentage = fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrValidation)
	ErrInvalidDiscountPeriod     = fmt.Errorf("%w: discount end date must be after start date", ErrValidation)
	ErrDiscountNotValid          = fmt.Errorf("%w: discount is not valid at this time", ErrConflict)
	ErrDiscountAlreadyExists     = fmt.Errorf("%w: pricing entry already has a discount", ErrConflict)
	ErrNegativeAmount            = fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	ErrZeroAmount                = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrNegativeRate              = fmt.Errorf("%w: rate cannot be negative", ErrValidation)
	ErrInvalidEffectivePeriod    = fmt.Errorf("%w: effective_to must be after effective_from", ErrValidation)
)

// Other entity errors
var (
	ErrLifecycleOverlap      = fmt.Errorf("%w: lifecycle entry overlaps an existing entry", ErrConflict)
	ErrLimitBoundsMissing    = fmt.Errorf("%w: limit needs at least one of min_amount, max_amount, max_count", ErrValidation)
	ErrLimitBoundsInverted   = fmt.Errorf("%w: min_amount cannot exceed max_amount", ErrValidation)
	ErrInvalidMaxCount       = fmt.Errorf("%w: max_count must be greater than zero", ErrValidation)
	ErrInvalidValidityDays   = fmt.Errorf("%w: validity_days must be greater than zero", ErrValidation)
	ErrInvalidLocale         = fmt.Errorf("%w: locale is not a valid BCP 47 tag", ErrValidation)
	ErrInvalidCurrency       = fmt.Errorf("%w: currency is not a valid ISO 4217 code", ErrValidation)
	ErrInvalidRuleCondition  = fmt.Errorf("%w: invalid fee rule condition", ErrValidation)
	ErrBundleItemDuplicate   = fmt.Errorf("%w: product is already part of the bundle", ErrConflict)
	ErrBundleProductArchived = fmt.Errorf("%w: archived products cannot be bundled", ErrConflict)
	ErrBundleRetired         = fmt.Errorf("%w: bundle is retired", ErrConflict)
)

// RequiredError reports a missing required field.
func RequiredError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

// InvalidError reports a field whose value is not acceptable.
func InvalidError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
