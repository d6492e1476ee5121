// Package manage_localizations holds the write use cases of localizations.
// Every write drops the cached product views, which embed localized names.
package manage_localizations

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
	contracts.LocalizationReader
}

type Interactor struct {
	Repo      contracts.LocalizationRepo
	ReadModel ReadModel
	Writer    *shared.Writer
}

func NewInteractor(repo contracts.LocalizationRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{Repo: repo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Create(ctx context.Context, productID string, in domain.LocalizationInput) (*domain.Localization, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := domain.NewLocalization(uuid.New().String(), productID, in, it.Writer.Now())
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

func (it *Interactor) Update(ctx context.Context, productID, localizationID string, patch domain.LocalizationPatch) (*domain.Localization, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := it.ReadModel.GetLocalization(ctx, productID, localizationID)
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

func (it *Interactor) Delete(ctx context.Context, productID, localizationID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetLocalization(ctx, productID, localizationID); err != nil {
		return err
	}

	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.Repo.DeleteMut(productID, localizationID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityLocalization, productID, localizationID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}
