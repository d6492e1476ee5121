// Package manage_documents holds the write use cases of documentation requirements.
// A duplicate document type is rejected by the unique index at commit time.
package manage_documents

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
	contracts.DocumentReader
}

type Interactor struct {
	Repo      contracts.DocumentRepo
	ReadModel ReadModel
	Writer    *shared.Writer
}

func NewInteractor(repo contracts.DocumentRepo, readModel ReadModel, w *shared.Writer) *Interactor {
	return &Interactor{Repo: repo, ReadModel: readModel, Writer: w}
}

func (it *Interactor) Create(ctx context.Context, productID string, in domain.DocumentInput) (*domain.DocumentRequirement, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := domain.NewDocumentRequirement(uuid.New().String(), productID, in, it.Writer.Now())
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

func (it *Interactor) Update(ctx context.Context, productID, documentID string, patch domain.DocumentPatch) (*domain.DocumentRequirement, error) {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return nil, err
	}
	e, err := it.ReadModel.GetDocumentRequirement(ctx, productID, documentID)
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

func (it *Interactor) Delete(ctx context.Context, productID, documentID string) error {
	if _, err := shared.LoadMutableProduct(ctx, it.ReadModel, productID); err != nil {
		return err
	}
	if _, err := it.ReadModel.GetDocumentRequirement(ctx, productID, documentID); err != nil {
		return err
	}

	now := it.Writer.Now()
	plan := commitplan.NewPlan()
	plan.Add(it.Repo.DeleteMut(productID, documentID))
	if err := it.Writer.AddEvent(plan, domain.DeletedEvent(domain.EntityDocument, productID, documentID, now), now); err != nil {
		return err
	}
	return it.Writer.Commit(ctx, plan, productID)
}
