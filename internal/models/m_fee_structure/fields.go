package m_fee_structure

// Field constants for the fee_structures table, interleaved in products.
const (
	TableName = "fee_structures"

	ColProductID      = "product_id"
	ColFeeStructureID = "fee_structure_id"
	ColName           = "name"
	ColDescription    = "description"
	ColEffectiveFrom  = "effective_from"
	ColEffectiveTo    = "effective_to"
	ColCreatedAt      = "created_at"
	ColUpdatedAt      = "updated_at"
)
