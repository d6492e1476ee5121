package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Repos are the mutation builders a wizard commit needs.
type Repos struct {
	Products      contracts.ProductRepo
	Pricing       contracts.PricingRepo
	Fees          contracts.FeeRepo
	Limits        contracts.LimitRepo
	Documents     contracts.DocumentRepo
	Localizations contracts.LocalizationRepo
}

// Result holds the entities written by a commit.
type Result struct {
	Product       *domain.Product
	Pricing       []*domain.Pricing
	FeeStructures []*domain.FeeStructure
	FeeComponents []*domain.FeeComponent
	FeeRules      []*domain.FeeRule
	Limits        []*domain.Limit
	Documents     []*domain.DocumentRequirement
	Localizations []*domain.Localization
}

func (r *Result) sources() []shared.EventSource {
	out := []shared.EventSource{r.Product}
	for _, p := range r.Pricing {
		out = append(out, p)
	}
	for _, fs := range r.FeeStructures {
		out = append(out, fs)
	}
	for _, c := range r.FeeComponents {
		out = append(out, c)
	}
	for _, fr := range r.FeeRules {
		out = append(out, fr)
	}
	for _, l := range r.Limits {
		out = append(out, l)
	}
	for _, d := range r.Documents {
		out = append(out, d)
	}
	for _, l := range r.Localizations {
		out = append(out, l)
	}
	return out
}

func (s *Service) commit(ctx context.Context, sess *Session) (*Result, error) {
	res, err := build(sess, s.writer.Now())
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(s.repos.Products.InsertMut(res.Product))
	for _, p := range res.Pricing {
		plan.Add(s.repos.Pricing.InsertMut(p))
	}
	for _, fs := range res.FeeStructures {
		plan.Add(s.repos.Fees.InsertStructureMut(fs))
	}
	for _, c := range res.FeeComponents {
		plan.Add(s.repos.Fees.InsertComponentMut(c))
	}
	for _, fr := range res.FeeRules {
		plan.Add(s.repos.Fees.InsertRuleMut(fr))
	}
	for _, l := range res.Limits {
		plan.Add(s.repos.Limits.InsertMut(l))
	}
	for _, d := range res.Documents {
		plan.Add(s.repos.Documents.InsertMut(d))
	}
	for _, l := range res.Localizations {
		plan.Add(s.repos.Localizations.InsertMut(l))
	}

	if err := s.writer.Commit(ctx, plan, "", res.sources()...); err != nil {
		return nil, fmt.Errorf("wizard commit: %w", err)
	}
	return res, nil
}

// build assigns ids and constructs every staged entity. Parents come before
// their children so the interleaved inserts are valid in one transaction.
func build(sess *Session, now time.Time) (*Result, error) {
	product, err := domain.NewProduct(uuid.New().String(), sess.Product, now)
	if err != nil {
		return nil, &StepError{Step: StepProduct, Err: err}
	}
	pid := product.ID()
	res := &Result{Product: product}

	for i, in := range sess.Pricing {
		p, err := domain.NewPricing(uuid.New().String(), pid, in, now)
		if err != nil {
			return nil, &StepError{Step: StepPricing, Index: i, Err: err}
		}
		res.Pricing = append(res.Pricing, p)
	}
	for i, draft := range sess.Fees {
		fs, err := domain.NewFeeStructure(uuid.New().String(), pid, draft.Structure, now)
		if err != nil {
			return nil, &StepError{Step: StepFees, Index: i, Err: err}
		}
		res.FeeStructures = append(res.FeeStructures, fs)
		for _, cd := range draft.Components {
			c, err := domain.NewFeeComponent(uuid.New().String(), pid, fs.ID(), cd.Component, now)
			if err != nil {
				return nil, &StepError{Step: StepFees, Index: i, Err: err}
			}
			res.FeeComponents = append(res.FeeComponents, c)
			for _, rin := range cd.Rules {
				fr, err := domain.NewFeeRule(uuid.New().String(), pid, fs.ID(), c.ID(), rin, now)
				if err != nil {
					return nil, &StepError{Step: StepFees, Index: i, Err: err}
				}
				res.FeeRules = append(res.FeeRules, fr)
			}
		}
	}
	for i, in := range sess.Limits {
		l, err := domain.NewLimit(uuid.New().String(), pid, in, now)
		if err != nil {
			return nil, &StepError{Step: StepLimits, Index: i, Err: err}
		}
		res.Limits = append(res.Limits, l)
	}
	for i, in := range sess.Documents {
		d, err := domain.NewDocumentRequirement(uuid.New().String(), pid, in, now)
		if err != nil {
			return nil, &StepError{Step: StepDocuments, Index: i, Err: err}
		}
		res.Documents = append(res.Documents, d)
	}
	for i, in := range sess.Localizations {
		l, err := domain.NewLocalization(uuid.New().String(), pid, in, now)
		if err != nil {
			return nil, &StepError{Step: StepLocalizations, Index: i, Err: err}
		}
		res.Localizations = append(res.Localizations, l)
	}
	return res, nil
}

// Submission checks. Entities are built against a placeholder product and
// thrown away; only the inputs are staged.

func validateProduct(d domain.ProductDetails) error {
	if _, err := domain.NewProduct(stagedID, d, time.Time{}); err != nil {
		return &StepError{Step: StepProduct, Err: err}
	}
	return nil
}

func validatePricing(items []domain.PricingInput, now time.Time) error {
	for i, in := range items {
		if _, err := domain.NewPricing(stagedID, stagedID, in, now); err != nil {
			return &StepError{Step: StepPricing, Index: i, Err: err}
		}
	}
	return nil
}

func validateFees(items []FeeStructureDraft, now time.Time) error {
	for i, draft := range items {
		if _, err := domain.NewFeeStructure(stagedID, stagedID, draft.Structure, now); err != nil {
			return &StepError{Step: StepFees, Index: i, Err: err}
		}
		for _, cd := range draft.Components {
			if _, err := domain.NewFeeComponent(stagedID, stagedID, stagedID, cd.Component, now); err != nil {
				return &StepError{Step: StepFees, Index: i, Err: err}
			}
			for _, rin := range cd.Rules {
				if _, err := domain.NewFeeRule(stagedID, stagedID, stagedID, stagedID, rin, now); err != nil {
					return &StepError{Step: StepFees, Index: i, Err: err}
				}
			}
		}
	}
	return nil
}

func validateLimits(items []domain.LimitInput, now time.Time) error {
	for i, in := range items {
		if _, err := domain.NewLimit(stagedID, stagedID, in, now); err != nil {
			return &StepError{Step: StepLimits, Index: i, Err: err}
		}
	}
	return nil
}

func validateDocuments(items []domain.DocumentInput, now time.Time) error {
	seen := make(map[string]bool, len(items))
	for i, in := range items {
		d, err := domain.NewDocumentRequirement(stagedID, stagedID, in, now)
		if err != nil {
			return &StepError{Step: StepDocuments, Index: i, Err: err}
		}
		if seen[d.DocumentType()] {
			return &StepError{Step: StepDocuments, Index: i, Err: domain.InvalidError("document_type", "staged twice")}
		}
		seen[d.DocumentType()] = true
	}
	return nil
}

func validateLocalizations(items []domain.LocalizationInput, now time.Time) error {
	seen := make(map[string]bool, len(items))
	for i, in := range items {
		l, err := domain.NewLocalization(stagedID, stagedID, in, now)
		if err != nil {
			return &StepError{Step: StepLocalizations, Index: i, Err: err}
		}
		if seen[l.Locale()] {
			return &StepError{Step: StepLocalizations, Index: i, Err: domain.InvalidError("locale", "staged twice")}
		}
		seen[l.Locale()] = true
	}
	return nil
}
