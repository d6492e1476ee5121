package m_bundle

// Field constants for the product_bundles table.
const (
	TableName = "product_bundles"

	CodeIndex = "bundles_by_code"

	ColBundleID    = "bundle_id"
	ColCode        = "code"
	ColName        = "name"
	ColDescription = "description"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)
