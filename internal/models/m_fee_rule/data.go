package m_fee_rule

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID      string              `spanner:"product_id"`
	FeeStructureID string              `spanner:"fee_structure_id"`
	FeeComponentID string              `spanner:"fee_component_id"`
	FeeRuleID      string              `spanner:"fee_rule_id"`
	Name           string              `spanner:"name"`
	Attribute      string              `spanner:"attribute"`
	Operator       string              `spanner:"operator"`
	Value          string              `spanner:"value"`
	Action         string              `spanner:"action"`
	ActionValue    spanner.NullNumeric `spanner:"action_value"`
	Priority       int64               `spanner:"priority"`
	CreatedAt      time.Time           `spanner:"created_at"`
	UpdatedAt      time.Time           `spanner:"updated_at"`
}

const Columns = `product_id, fee_structure_id, fee_component_id, fee_rule_id, name, attribute,
	operator, value, action, action_value, priority, created_at, updated_at`

func keys(productID, feeStructureID, feeComponentID, feeRuleID string) []mutation.Key {
	return []mutation.Key{
		{Column: ColProductID, Value: productID},
		{Column: ColFeeStructureID, Value: feeStructureID},
		{Column: ColFeeComponentID, Value: feeComponentID},
		{Column: ColFeeRuleID, Value: feeRuleID},
	}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, feeStructureID, feeComponentID, feeRuleID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, feeStructureID, feeComponentID, feeRuleID), values)
}

func DeleteMutation(productID, feeStructureID, feeComponentID, feeRuleID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, feeStructureID, feeComponentID, feeRuleID)...)
}
