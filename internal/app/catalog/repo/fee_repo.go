package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_component"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_rule"
	"github.com/murkotick/financial-catalog-service/internal/models/m_fee_structure"
)

// FeeRepo builds mutations for the structure, component and rule tables.
type FeeRepo struct{}

func NewFeeRepo() *FeeRepo {
	return &FeeRepo{}
}

func buildFeeStructureInsertValues(fs *domain.FeeStructure) map[string]interface{} {
	return map[string]interface{}{
		m_fee_structure.ColProductID:      fs.ProductID(),
		m_fee_structure.ColFeeStructureID: fs.ID(),
		m_fee_structure.ColName:           fs.Name(),
		m_fee_structure.ColDescription:    nullableString(fs.Description()),
		m_fee_structure.ColEffectiveFrom:  fs.Period().From,
		m_fee_structure.ColEffectiveTo:    nullableTime(fs.Period().To),
		m_fee_structure.ColCreatedAt:      fs.CreatedAt().UTC(),
		m_fee_structure.ColUpdatedAt:      fs.UpdatedAt().UTC(),
	}
}

func (r *FeeRepo) InsertStructureMut(fs *domain.FeeStructure) *spanner.Mutation {
	if fs == nil {
		return nil
	}
	return m_fee_structure.InsertMutation(buildFeeStructureInsertValues(fs))
}

func (r *FeeRepo) UpdateStructureMut(fs *domain.FeeStructure) *spanner.Mutation {
	if fs == nil || !fs.Changes().HasChanges() {
		return nil
	}
	ch := fs.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldName) {
		updates[m_fee_structure.ColName] = fs.Name()
	}
	if ch.Dirty(domain.FieldDescription) {
		updates[m_fee_structure.ColDescription] = nullableString(fs.Description())
	}
	if ch.Dirty(domain.FieldEffectiveFrom) {
		updates[m_fee_structure.ColEffectiveFrom] = fs.Period().From
	}
	if ch.Dirty(domain.FieldEffectiveTo) {
		updates[m_fee_structure.ColEffectiveTo] = nullableTime(fs.Period().To)
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_fee_structure.ColUpdatedAt] = fs.UpdatedAt().UTC()
	return m_fee_structure.UpdateMutation(fs.ProductID(), fs.ID(), updates)
}

func (r *FeeRepo) DeleteStructureMut(productID, feeStructureID string) *spanner.Mutation {
	return m_fee_structure.DeleteMutation(productID, feeStructureID)
}

func buildFeeComponentInsertValues(c *domain.FeeComponent) map[string]interface{} {
	num, den := moneyColumns(c.Amount())
	return map[string]interface{}{
		m_fee_component.ColProductID:         c.ProductID(),
		m_fee_component.ColFeeStructureID:    c.FeeStructureID(),
		m_fee_component.ColFeeComponentID:    c.ID(),
		m_fee_component.ColName:              c.Name(),
		m_fee_component.ColFeeType:           string(c.FeeType()),
		m_fee_component.ColAmountNumerator:   num,
		m_fee_component.ColAmountDenominator: den,
		m_fee_component.ColRate:              rateNumeric(c.Rate()),
		m_fee_component.ColFrequency:         string(c.Frequency()),
		m_fee_component.ColCreatedAt:         c.CreatedAt().UTC(),
		m_fee_component.ColUpdatedAt:         c.UpdatedAt().UTC(),
	}
}

func (r *FeeRepo) InsertComponentMut(c *domain.FeeComponent) *spanner.Mutation {
	if c == nil {
		return nil
	}
	return m_fee_component.InsertMutation(buildFeeComponentInsertValues(c))
}

func (r *FeeRepo) UpdateComponentMut(c *domain.FeeComponent) *spanner.Mutation {
	if c == nil || !c.Changes().HasChanges() {
		return nil
	}
	ch := c.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldName) {
		updates[m_fee_component.ColName] = c.Name()
	}
	if ch.Dirty(domain.FieldAmount) {
		updates[m_fee_component.ColAmountNumerator], updates[m_fee_component.ColAmountDenominator] = moneyColumns(c.Amount())
	}
	if ch.Dirty(domain.FieldRate) {
		updates[m_fee_component.ColRate] = rateNumeric(c.Rate())
	}
	if ch.Dirty(domain.FieldFrequency) {
		updates[m_fee_component.ColFrequency] = string(c.Frequency())
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_fee_component.ColUpdatedAt] = c.UpdatedAt().UTC()
	return m_fee_component.UpdateMutation(c.ProductID(), c.FeeStructureID(), c.ID(), updates)
}

func (r *FeeRepo) DeleteComponentMut(productID, feeStructureID, feeComponentID string) *spanner.Mutation {
	return m_fee_component.DeleteMutation(productID, feeStructureID, feeComponentID)
}

func buildFeeRuleInsertValues(fr *domain.FeeRule) map[string]interface{} {
	return map[string]interface{}{
		m_fee_rule.ColProductID:      fr.ProductID(),
		m_fee_rule.ColFeeStructureID: fr.FeeStructureID(),
		m_fee_rule.ColFeeComponentID: fr.FeeComponentID(),
		m_fee_rule.ColFeeRuleID:      fr.ID(),
		m_fee_rule.ColName:           fr.Name(),
		m_fee_rule.ColAttribute:      fr.Attribute(),
		m_fee_rule.ColOperator:       string(fr.Operator()),
		m_fee_rule.ColValue:          fr.Value(),
		m_fee_rule.ColAction:         string(fr.Action()),
		m_fee_rule.ColActionValue:    numeric(fr.ActionValue()),
		m_fee_rule.ColPriority:       fr.Priority(),
		m_fee_rule.ColCreatedAt:      fr.CreatedAt().UTC(),
		m_fee_rule.ColUpdatedAt:      fr.UpdatedAt().UTC(),
	}
}

func (r *FeeRepo) InsertRuleMut(fr *domain.FeeRule) *spanner.Mutation {
	if fr == nil {
		return nil
	}
	return m_fee_rule.InsertMutation(buildFeeRuleInsertValues(fr))
}

func (r *FeeRepo) UpdateRuleMut(fr *domain.FeeRule) *spanner.Mutation {
	if fr == nil || !fr.Changes().HasChanges() {
		return nil
	}
	ch := fr.Changes()
	updates := map[string]interface{}{}
	if ch.Dirty(domain.FieldName) {
		updates[m_fee_rule.ColName] = fr.Name()
	}
	if ch.Dirty(domain.FieldAttribute) {
		updates[m_fee_rule.ColAttribute] = fr.Attribute()
	}
	if ch.Dirty(domain.FieldOperator) {
		updates[m_fee_rule.ColOperator] = string(fr.Operator())
	}
	if ch.Dirty(domain.FieldValue) {
		updates[m_fee_rule.ColValue] = fr.Value()
	}
	if ch.Dirty(domain.FieldAction) {
		updates[m_fee_rule.ColAction] = string(fr.Action())
	}
	if ch.Dirty(domain.FieldActionValue) || ch.Dirty(domain.FieldAction) {
		updates[m_fee_rule.ColActionValue] = numeric(fr.ActionValue())
	}
	if ch.Dirty(domain.FieldPriority) {
		updates[m_fee_rule.ColPriority] = fr.Priority()
	}
	if len(updates) == 0 {
		return nil
	}
	updates[m_fee_rule.ColUpdatedAt] = fr.UpdatedAt().UTC()
	return m_fee_rule.UpdateMutation(fr.ProductID(), fr.FeeStructureID(), fr.FeeComponentID(), fr.ID(), updates)
}

func (r *FeeRepo) DeleteRuleMut(productID, feeStructureID, feeComponentID, feeRuleID string) *spanner.Mutation {
	return m_fee_rule.DeleteMutation(productID, feeStructureID, feeComponentID, feeRuleID)
}
