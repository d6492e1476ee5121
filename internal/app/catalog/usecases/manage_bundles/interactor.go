// Package manage_bundles holds the write use cases of product bundles.
package manage_bundles

import (
	"context"

	"github.com/google/uuid"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

type ReadModel interface {
	contracts.ProductReader
	contracts.BundleReader
}

// ItemRequest adds a product to a bundle. A zero Position appends.
type ItemRequest struct {
	ProductID string
	Mandatory bool
	Position  int64
}

type CreateRequest struct {
	domain.BundleInput
	Items []ItemRequest
}

type Interactor struct {
	BundleRepo contracts.BundleRepo
	ReadModel  ReadModel
	Writer     *shared.Writer
}

func NewInteractor(bundleRepo contracts.BundleRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{BundleRepo: bundleRepo, ReadModel: readModel, Writer: w}
}

// Create inserts the bundle and its initial items in one commit.
func (it *Interactor) Create(ctx context.Context, req CreateRequest) (*domain.Bundle, error) {
	now := it.Writer.Now()
	b, err := domain.NewBundle(uuid.New().String(), req.BundleInput, now)
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.BundleRepo.InsertMut(b))
	for _, ir := range req.Items {
		item, err := it.addItem(ctx, b, ir)
		if err != nil {
			return nil, err
		}
		plan.Add(it.BundleRepo.InsertItemMut(b.ID(), item))
	}

	if err := it.Writer.Commit(ctx, plan, "", b); err != nil {
		return nil, err
	}
	return b, nil
}

func (it *Interactor) Update(ctx context.Context, bundleID string, patch domain.BundlePatch) (*domain.Bundle, error) {
	b, err := it.ReadModel.GetBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if err := b.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.BundleRepo.UpdateMut(b))
	if err := it.Writer.Commit(ctx, plan, "", b); err != nil {
		return nil, err
	}
	return b, nil
}

func (it *Interactor) AddItem(ctx context.Context, bundleID string, req ItemRequest) (*domain.Bundle, error) {
	b, err := it.ReadModel.GetBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	item, err := it.addItem(ctx, b, req)
	if err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.AddAll(it.BundleRepo.InsertItemMut(b.ID(), item), it.BundleRepo.UpdateMut(b))
	if err := it.Writer.Commit(ctx, plan, "", b); err != nil {
		return nil, err
	}
	return b, nil
}

func (it *Interactor) RemoveItem(ctx context.Context, bundleID, productID string) (*domain.Bundle, error) {
	b, err := it.ReadModel.GetBundle(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if err := b.RemoveItem(productID, it.Writer.Now()); err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.AddAll(it.BundleRepo.DeleteItemMut(b.ID(), productID), it.BundleRepo.UpdateMut(b))
	if err := it.Writer.Commit(ctx, plan, "", b); err != nil {
		return nil, err
	}
	return b, nil
}

func (it *Interactor) Delete(ctx context.Context, bundleID string) error {
	if _, err := it.ReadModel.GetBundle(ctx, bundleID); err != nil {
		return err
	}
	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.BundleRepo.DeleteMut(bundleID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityBundle, bundleID, bundleID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, "")
}

// addItem resolves the product and lets the bundle validate the item.
// An unknown product surfaces as product not found.
func (it *Interactor) addItem(ctx context.Context, b *domain.Bundle, req ItemRequest) (domain.BundleItem, error) {
	p, err := it.ReadModel.GetProduct(ctx, req.ProductID)
	if err != nil {
		return domain.BundleItem{}, err
	}
	return b.AddItem(p, req.Mandatory, req.Position, it.Writer.Now())
}
