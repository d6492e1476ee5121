// Package change_status implements activate, deactivate and archive.
package change_status

import (
	"context"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

type Interactor struct {
	ProductRepo contracts.ProductRepo
	ReadModel   contracts.ProductReader
	Writer      *shared.Writer
}

func NewInteractor(productRepo contracts.ProductRepo, readModel contracts.ProductReader, w *shared.Writer) *Interactor {
	return &Interactor{ProductRepo: productRepo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Activate(ctx context.Context, productID string) (*domain.Product, error) {
	return it.execute(ctx, productID, (*domain.Product).Activate)
}

func (it *Interactor) Deactivate(ctx context.Context, productID string) (*domain.Product, error) {
	return it.execute(ctx, productID, (*domain.Product).Deactivate)
}

// Archive soft-deletes the product. The row stays so history and bundles
// keep resolving.
func (it *Interactor) Archive(ctx context.Context, productID string) (*domain.Product, error) {
	return it.execute(ctx, productID, (*domain.Product).Archive)
}

func (it *Interactor) execute(ctx context.Context, productID string, transition func(*domain.Product, time.Time) error) (*domain.Product, error) {
	product, err := it.ReadModel.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := transition(product, it.Writer.Now()); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.UpdateMut(product))

	if err := it.Writer.Commit(ctx, plan, product.ID(), product); err != nil {
		return nil, err
	}
	return product, nil
}
