// Package manage_pricing holds the write use cases of pricing entries,
// discounts included.
package manage_pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

type ReadModel interface {
	contracts.ProductReader
	contracts.PricingReader
}

// DiscountRequest applies a percentage discount valid within [StartDate, EndDate).
type DiscountRequest struct {
	ProductID  string
	PricingID  string
	Percentage *domain.Rate
	StartDate  time.Time
	EndDate    time.Time
}

type Interactor struct {
	PricingRepo contracts.PricingRepo
	ReadModel   ReadModel
	Writer      *shared.Writer
}

func NewInteractor(pricingRepo contracts.PricingRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{PricingRepo: pricingRepo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Create(ctx context.Context, productID string, in domain.PricingInput) (*domain.Pricing, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	p, err := domain.NewPricing(uuid.New().String(), productID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.PricingRepo.InsertMut(p))
	if err := it.Writer.Commit(ctx, plan, productID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (it *Interactor) Update(ctx context.Context, productID, pricingID string, patch domain.PricingPatch) (*domain.Pricing, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	p, err := it.ReadModel.GetPricing(ctx, productID, pricingID)
	if err != nil {
		return nil, err
	}
	if err := p.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.PricingRepo.UpdateMut(p))
	if err := it.Writer.Commit(ctx, plan, productID, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (it *Interactor) Delete(ctx context.Context, productID, pricingID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetPricing(ctx, productID, pricingID); err != nil {
		return err
	}

	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.PricingRepo.DeleteMut(productID, pricingID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityPricing, productID, pricingID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}

// ApplyDiscount requires an active product and a discount valid now.
func (it *Interactor) ApplyDiscount(ctx context.Context, req DiscountRequest) (*domain.Pricing, error) {
	product, err := it.ReadModel.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := it.ReadModel.GetPricing(ctx, req.ProductID, req.PricingID)
	if err != nil {
		return nil, err
	}
	discount, err := domain.NewDiscount(req.Percentage, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := p.ApplyDiscount(product, discount, it.Writer.Now()); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.PricingRepo.UpdateMut(p))
	if err := it.Writer.Commit(ctx, plan, req.ProductID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveDiscount is idempotent: a pricing entry without a discount is
// returned unchanged and nothing is written.
func (it *Interactor) RemoveDiscount(ctx context.Context, productID, pricingID string) (*domain.Pricing, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	p, err := it.ReadModel.GetPricing(ctx, productID, pricingID)
	if err != nil {
		return nil, err
	}
	p.RemoveDiscount(it.Writer.Now())

	plan := commitplan.NewPlan()
	plan.Add(it.PricingRepo.UpdateMut(p))
	if err := it.Writer.Commit(ctx, plan, productID, p); err != nil {
		return nil, err
	}
	return p, nil
}
