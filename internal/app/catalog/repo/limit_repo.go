package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_limit"
)

type LimitRepo struct{}

func NewLimitRepo() *LimitRepo {
	return &LimitRepo{}
}

func buildLimitInsertValues(l *domain.Limit) map[string]interface{} {
	minNum, minDen := moneyColumns(l.MinAmount())
	maxNum, maxDen := moneyColumns(l.MaxAmount())
	return map[string]interface{}{
		m_limit.ColProductID:            l.ProductID(),
		m_limit.ColLimitID:              l.ID(),
		m_limit.ColLimitType:            string(l.LimitType()),
		m_limit.ColPeriod:               string(l.Period()),
		m_limit.ColMinAmountNumerator:   minNum,
		m_limit.ColMinAmountDenominator: minDen,
		m_limit.ColMaxAmountNumerator:   maxNum,
		m_limit.ColMaxAmountDenominator: maxDen,
		m_limit.ColMaxCount:             nullableInt64(l.MaxCount()),
		m_limit.ColCreatedAt:            l.CreatedAt().UTC(),
		m_limit.ColUpdatedAt:            l.UpdatedAt().UTC(),
	}
}

func (r *LimitRepo) InsertMut(l *domain.Limit) *spanner.Mutation {
	if l == nil {
		return nil
	}
	return m_limit.InsertMutation(buildLimitInsertValues(l))
}

func (r *LimitRepo) UpdateMut(l *domain.Limit) *spanner.Mutation {
	if l == nil || !l.Changes().HasChanges() {
		return nil
	}
	ch := l.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldPeriod) {
		updates[m_limit.ColPeriod] = string(l.Period())
	}
	if ch.Dirty(domain.FieldMinAmount) {
		updates[m_limit.ColMinAmountNumerator], updates[m_limit.ColMinAmountDenominator] = moneyColumns(l.MinAmount())
	}
	if ch.Dirty(domain.FieldMaxAmount) {
		updates[m_limit.ColMaxAmountNumerator], updates[m_limit.ColMaxAmountDenominator] = moneyColumns(l.MaxAmount())
	}
	if ch.Dirty(domain.FieldMaxCount) {
		updates[m_limit.ColMaxCount] = nullableInt64(l.MaxCount())
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_limit.ColUpdatedAt] = l.UpdatedAt().UTC()
	return m_limit.UpdateMutation(l.ProductID(), l.ID(), updates)
}

func (r *LimitRepo) DeleteMut(productID, limitID string) *spanner.Mutation {
	return m_limit.DeleteMutation(productID, limitID)
}
