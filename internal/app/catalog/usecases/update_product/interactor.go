package update_product

import (
	"context"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Request carries a partial update; nil fields stay unchanged.
type Request struct {
	ProductID   string
	Name        *string
	Description *string
	Category    *string
	Currency    *string
}

type Interactor struct {
	ProductRepo contracts.ProductRepo
	ReadModel   contracts.ProductReader
	Writer      *shared.Writer
}

func NewInteractor(productRepo contracts.ProductRepo, readModel contracts.ProductReader, w *shared.Writer) *Interactor {
	return &Interactor{ProductRepo: productRepo, ReadModel: readModel, Writer: w}
}

// Execute applies the patch. A patch that changes nothing writes nothing.
func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Product, error) {
	product, err := it.ReadModel.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	patch := domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
	}
	if err := product.UpdateDetails(patch, it.Writer.Now()); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.UpdateMut(product))

	if err := it.Writer.Commit(ctx, plan, product.ID(), product); err != nil {
		return nil, err
	}
	return product, nil
}
