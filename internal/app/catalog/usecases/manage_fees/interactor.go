// Package manage_fees holds the write use cases of the fee hierarchy:
// structures, their components and the components' rules.
package manage_fees

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
	contracts.FeeReader
}

type Interactor struct {
	FeeRepo   contracts.FeeRepo
	ReadModel ReadModel
	Writer    *shared.Writer
}

func NewInteractor(feeRepo contracts.FeeRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{FeeRepo: feeRepo, ReadModel: readModel, Writer: w}
}

// Structures

func (it *Interactor) CreateStructure(ctx context.Context, productID string, in domain.FeeStructureInput) (*domain.FeeStructure, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	fs, err := domain.NewFeeStructure(uuid.New().String(), productID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.InsertStructureMut(fs))
	if err := it.Writer.Commit(ctx, plan, productID, fs); err != nil {
		return nil, err
	}
	return fs, nil
}

func (it *Interactor) UpdateStructure(ctx context.Context, productID, feeStructureID string, patch domain.FeeStructurePatch) (*domain.FeeStructure, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	fs, err := it.ReadModel.GetFeeStructure(ctx, productID, feeStructureID)
	if err != nil {
		return nil, err
	}
	if err := fs.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.UpdateStructureMut(fs))
	if err := it.Writer.Commit(ctx, plan, productID, fs); err != nil {
		return nil, err
	}
	return fs, nil
}

// DeleteStructure removes the structure with its components and rules.
func (it *Interactor) DeleteStructure(ctx context.Context, productID, feeStructureID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetFeeStructure(ctx, productID, feeStructureID); err != nil {
		return err
	}
	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.DeleteStructureMut(productID, feeStructureID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityFeeStructure, productID, feeStructureID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}

// Components

func (it *Interactor) CreateComponent(ctx context.Context, productID, feeStructureID string, in domain.FeeComponentInput) (*domain.FeeComponent, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	if _, err := it.ReadModel.GetFeeStructure(ctx, productID, feeStructureID); err != nil {
		return nil, err
	}
	c, err := domain.NewFeeComponent(uuid.New().String(), productID, feeStructureID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.InsertComponentMut(c))
	if err := it.Writer.Commit(ctx, plan, productID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (it *Interactor) UpdateComponent(ctx context.Context, productID, feeStructureID, feeComponentID string, patch domain.FeeComponentPatch) (*domain.FeeComponent, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	c, err := it.ReadModel.GetFeeComponent(ctx, productID, feeStructureID, feeComponentID)
	if err != nil {
		return nil, err
	}
	if err := c.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.UpdateComponentMut(c))
	if err := it.Writer.Commit(ctx, plan, productID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (it *Interactor) DeleteComponent(ctx context.Context, productID, feeStructureID, feeComponentID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetFeeComponent(ctx, productID, feeStructureID, feeComponentID); err != nil {
		return err
	}
	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.DeleteComponentMut(productID, feeStructureID, feeComponentID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityFeeComponent, productID, feeComponentID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}

// Rules

func (it *Interactor) CreateRule(ctx context.Context, productID, feeStructureID, feeComponentID string, in domain.FeeRuleInput) (*domain.FeeRule, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	if _, err := it.ReadModel.GetFeeComponent(ctx, productID, feeStructureID, feeComponentID); err != nil {
		return nil, err
	}
	r, err := domain.NewFeeRule(uuid.New().String(), productID, feeStructureID, feeComponentID, in, it.Writer.Now())
	if err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.InsertRuleMut(r))
	if err := it.Writer.Commit(ctx, plan, productID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (it *Interactor) UpdateRule(ctx context.Context, productID, feeStructureID, feeComponentID, feeRuleID string, patch domain.FeeRulePatch) (*domain.FeeRule, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	r, err := it.ReadModel.GetFeeRule(ctx, productID, feeStructureID, feeComponentID, feeRuleID)
	if err != nil {
		return nil, err
	}
	if err := r.Update(patch, it.Writer.Now()); err != nil {
		return nil, err
	}
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.UpdateRuleMut(r))
	if err := it.Writer.Commit(ctx, plan, productID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (it *Interactor) DeleteRule(ctx context.Context, productID, feeStructureID, feeComponentID, feeRuleID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetFeeRule(ctx, productID, feeStructureID, feeComponentID, feeRuleID); err != nil {
		return err
	}
	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.FeeRepo.DeleteRuleMut(productID, feeStructureID, feeComponentID, feeRuleID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityFeeRule, productID, feeRuleID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}
