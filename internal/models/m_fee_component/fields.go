package m_fee_component

// Field constants for the fee_components table, interleaved in fee_structures.
const (
	TableName = "fee_components"

	ColProductID         = "product_id"
	ColFeeStructureID    = "fee_structure_id"
	ColFeeComponentID    = "fee_component_id"
	ColName              = "name"
	ColFeeType           = "fee_type"
	ColAmountNumerator   = "amount_numerator"
	ColAmountDenominator = "amount_denominator"
	ColRate              = "rate"
	ColFrequency         = "frequency"
	ColCreatedAt         = "created_at"
	ColUpdatedAt         = "updated_at"
)
