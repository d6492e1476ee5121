package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_lifecycle"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

type LifecycleRepo struct{}

func NewLifecycleRepo() *LifecycleRepo {
	return &LifecycleRepo{}
}

func buildLifecycleInsertValues(e *domain.LifecycleEntry) map[string]interface{} {
	return map[string]interface{}{
		m_lifecycle.ColProductID:     e.ProductID(),
		m_lifecycle.ColLifecycleID:   e.ID(),
		m_lifecycle.ColStatus:        string(e.Status()),
		m_lifecycle.ColEffectiveFrom: e.Period().From,
		m_lifecycle.ColEffectiveTo:   nullableTime(e.Period().To),
		m_lifecycle.ColReason:        nullableString(e.Reason()),
		m_lifecycle.ColCreatedAt:     e.CreatedAt().UTC(),
		m_lifecycle.ColUpdatedAt:     e.UpdatedAt().UTC(),
	}
}

func (r *LifecycleRepo) InsertMut(e *domain.LifecycleEntry) *spanner.Mutation {
	if e == nil {
		return nil
	}
	return m_lifecycle.InsertMutation(buildLifecycleInsertValues(e))
}

func (r *LifecycleRepo) UpdateMut(e *domain.LifecycleEntry) *spanner.Mutation {
	if e == nil || !e.Changes().HasChanges() {
		return nil
	}
	ch := e.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldStatus) {
		updates[m_lifecycle.ColStatus] = string(e.Status())
	}
	if ch.Dirty(domain.FieldEffectiveFrom) {
		updates[m_lifecycle.ColEffectiveFrom] = e.Period().From
	}
	if ch.Dirty(domain.FieldEffectiveTo) {
		updates[m_lifecycle.ColEffectiveTo] = nullableTime(e.Period().To)
	}
	if ch.Dirty(domain.FieldReason) {
		updates[m_lifecycle.ColReason] = nullableString(e.Reason())
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_lifecycle.ColUpdatedAt] = e.UpdatedAt().UTC()
	return m_lifecycle.UpdateMutation(e.ProductID(), e.ID(), updates)
}

func (r *LifecycleRepo) DeleteMut(productID, lifecycleID string) *spanner.Mutation {
	return m_lifecycle.DeleteMutation(productID, lifecycleID)
}

// OverlapGuard fails the commit with ErrLifecycleOverlap when another entry
// of the product shares an instant with e. It reads inside the commit
// transaction, so concurrent writers of the same product serialize on it.
func (r *LifecycleRepo) OverlapGuard(e *domain.LifecycleEntry) commitplan.Guard {
	if e == nil {
		return nil
	}
	stmt := overlapStatement(e)
	return func(ctx context.Context, tx commitplan.Reader) error {
		iter := tx.Query(ctx, stmt)
		defer iter.Stop()
		_, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lifecycle overlap check: %w", err)
		}
		return domain.ErrLifecycleOverlap
	}
}

// overlapStatement selects one entry whose [from, to) window intersects e's.
// A NULL effective_to is open-ended.
func overlapStatement(e *domain.LifecycleEntry) spanner.Statement {
	sql := `SELECT ` + m_lifecycle.ColLifecycleID + ` FROM ` + m_lifecycle.TableName +
		` WHERE ` + m_lifecycle.ColProductID + ` = @pid AND ` + m_lifecycle.ColLifecycleID + ` != @id` +
		` AND (` + m_lifecycle.ColEffectiveTo + ` IS NULL OR ` + m_lifecycle.ColEffectiveTo + ` > @from)`
	params := map[string]interface{}{
		"pid":  e.ProductID(),
		"id":   e.ID(),
		"from": e.Period().From,
	}
	if to := e.Period().To; to != nil {
		sql += ` AND ` + m_lifecycle.ColEffectiveFrom + ` < @to`
		params["to"] = *to
	}
	return spanner.Statement{SQL: sql + ` LIMIT 1`, Params: params}
}
