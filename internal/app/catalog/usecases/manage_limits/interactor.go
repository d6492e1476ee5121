// Package manage_limits holds the write use cases of product limits.
package manage_limits

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
	contracts.LimitReader
}

type Interactor struct {
	Repo      contracts.LimitRepo
	ReadModel ReadModel
	Writer    *shared.Writer
}

func NewInteractor(repo contracts.LimitRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{Repo: repo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Create(ctx context.Context, productID string, in domain.LimitInput) (*domain.Limit, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := domain.NewLimit(uuid.New().String(), productID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.Repo.InsertMut(e))
	if err := it.Writer.Commit(ctx, plan, productID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (it *Interactor) Update(ctx context.Context, productID, limitID string, patch domain.LimitPatch) (*domain.Limit, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := it.ReadModel.GetLimit(ctx, productID, limitID)
	if err != nil {
		return nil, err
	}
	if err := e.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Add(it.Repo.UpdateMut(e))
	if err := it.Writer.Commit(ctx, plan, productID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (it *Interactor) Delete(ctx context.Context, productID, limitID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetLimit(ctx, productID, limitID); err != nil {
		return err
	}

	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.Repo.DeleteMut(productID, limitID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityLimit, productID, limitID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}
