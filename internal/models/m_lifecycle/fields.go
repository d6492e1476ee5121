package m_lifecycle

// Field constants for the product_lifecycle table, interleaved in products.
const (
	TableName = "product_lifecycle"

	ColProductID     = "product_id"
	ColLifecycleID   = "lifecycle_id"
	ColStatus        = "status"
	ColEffectiveFrom = "effective_from"
	ColEffectiveTo   = "effective_to"
	ColReason        = "reason"
	ColCreatedAt     = "created_at"
	ColUpdatedAt     = "updated_at"
)
