package manage_lifecycle

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
	contracts.LifecycleReader
}

// Interactor manages lifecycle entries. Entries of one product never overlap.
type Interactor struct {
	LifecycleRepo contracts.LifecycleRepo
	ReadModel     ReadModel
	Writer        *shared.Writer
}

func NewInteractor(lifecycleRepo contracts.LifecycleRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{LifecycleRepo: lifecycleRepo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Create(ctx context.Context, productID string, in domain.LifecycleInput) (*domain.LifecycleEntry, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := domain.NewLifecycleEntry(uuid.New().String(), productID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}
	if err := it.ensureNoOverlap(ctx, e); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Guard(it.LifecycleRepo.OverlapGuard(e))
	plan.Add(it.LifecycleRepo.InsertMut(e))
	if err := it.Writer.Commit(ctx, plan, productID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (it *Interactor) Update(ctx context.Context, productID, lifecycleID string, patch domain.LifecyclePatch) (*domain.LifecycleEntry, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := it.ReadModel.GetLifecycleEntry(ctx, productID, lifecycleID)
	if err != nil {
		return nil, err
	}
	if err := e.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}
	if err := it.ensureNoOverlap(ctx, e); err != nil {
		return nil, err
	}

	plan := commitplan.NewPlan()
	plan.Guard(it.LifecycleRepo.OverlapGuard(e))
	plan.Add(it.LifecycleRepo.UpdateMut(e))
	if err := it.Writer.Commit(ctx, plan, productID, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (it *Interactor) Delete(ctx context.Context, productID, lifecycleID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetLifecycleEntry(ctx, productID, lifecycleID); err != nil {
		return err
	}

	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.LifecycleRepo.DeleteMut(productID, lifecycleID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityLifecycle, productID, lifecycleID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}

// ensureNoOverlap rejects early against the read model. The plan guard
// repeats the check inside the commit transaction.
func (it *Interactor) ensureNoOverlap(ctx context.Context, e *domain.LifecycleEntry) error {
	existing, err := it.ReadModel.ListLifecycleEntries(ctx, e.ProductID())
	if err != nil {
		return err
	}
	return e.EnsureNoOverlap(existing)
}
