package create_product

import (
	"context"

	"github.com/google/uuid"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Request is the application-level create-product request.
type Request struct {
	Code        string
	Name        string
	Description string
	ProductType string
	Category    string
	Currency    string
}

// Interactor implements the create-product use case following the golden
// mutation pattern: one insert plus its outbox events in a single commit.
type Interactor struct {
	ProductRepo contracts.ProductRepo
	Writer      *shared.Writer
}

func NewInteractor(productRepo contracts.ProductRepo, w *shared.Writer) *Interactor {
	return &Interactor{ProductRepo: productRepo, Writer: w}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Product, error) {
	product, err := domain.NewProduct(uuid.New().String(), domain.ProductDetails{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ProductType: req.ProductType,
		Category:    req.Category,
		Currency:    req.Currency,
	}, it.Writer.Now())
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.ProductRepo.InsertMut(product))

	if err := it.Writer.Commit(ctx, plan, "", product); err != nil {
		return nil, err
	}
	return product, nil
}
