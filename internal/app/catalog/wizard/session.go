// Package wizard stages a product and its sub-entities across several
// requests and writes them in a single commit.
package wizard

import (
	"fmt"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// Step numbers a wizard page. Steps must be submitted in order.
type Step int

const (
	StepProduct Step = iota + 1
	StepPricing
	StepFees
	StepLimits
	StepDocuments
	StepLocalizations
)

func (s Step) String() string {
	switch s {
	case StepProduct:
		return "product"
	case StepPricing:
		return "pricing"
	case StepFees:
		return "fees"
	case StepLimits:
		return "limits"
	case StepDocuments:
		return "documents"
	case StepLocalizations:
		return "localizations"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrSessionNotFound = fmt.Errorf("wizard session %w", domain.ErrNotFound)
	ErrSessionExpired  = fmt.Errorf("wizard session expired: %w", domain.ErrNotFound)
	ErrStepOutOfOrder  = fmt.Errorf("%w: wizard step submitted out of order", domain.ErrConflict)
	ErrSessionBusy     = fmt.Errorf("%w: wizard session is being committed", domain.ErrConflict)
)

// StepError reports which step a staged item failed in.
type StepError struct {
	Step  Step
	Index int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("wizard %s[%d]: %v", e.Step, e.Index, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// FeeComponentDraft is a component together with the rules staged under it.
type FeeComponentDraft struct {
	Component domain.FeeComponentInput
	Rules     []domain.FeeRuleInput
}

// FeeStructureDraft is a structure together with its staged components.
type FeeStructureDraft struct {
	Structure  domain.FeeStructureInput
	Components []FeeComponentDraft
}

// Session is the staged state of one wizard run.
type Session struct {
	ID        int64
	Step      Step
	CreatedAt time.Time
	ExpiresAt time.Time

	Product       domain.ProductDetails
	Pricing       []domain.PricingInput
	Fees          []FeeStructureDraft
	Limits        []domain.LimitInput
	Documents     []domain.DocumentInput
	Localizations []domain.LocalizationInput

	committing bool
}

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// snapshot copies the session so callers never share staged slices.
func (s *Session) snapshot() *Session {
	out := *s
	out.Pricing = append([]domain.PricingInput(nil), s.Pricing...)
	out.Fees = append([]FeeStructureDraft(nil), s.Fees...)
	out.Limits = append([]domain.LimitInput(nil), s.Limits...)
	out.Documents = append([]domain.DocumentInput(nil), s.Documents...)
	out.Localizations = append([]domain.LocalizationInput(nil), s.Localizations...)
	return &out
}
