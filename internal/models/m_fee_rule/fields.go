package m_fee_rule

// Field constants for the fee_rules table, interleaved in fee_components.
const (
	TableName = "fee_rules"

	ColProductID      = "product_id"
	ColFeeStructureID = "fee_structure_id"
	ColFeeComponentID = "fee_component_id"
	ColFeeRuleID      = "fee_rule_id"
	ColName           = "name"
	ColAttribute      = "attribute"
	ColOperator       = "operator"
	ColValue          = "value"
	ColAction         = "action"
	ColActionValue    = "action_value"
	ColPriority       = "priority"
	ColCreatedAt      = "created_at"
	ColUpdatedAt      = "updated_at"
)
