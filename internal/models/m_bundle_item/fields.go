package m_bundle_item

// Field constants for the bundle_items table, interleaved in product_bundles.
const (
	TableName = "bundle_items"

	ColBundleID  = "bundle_id"
	ColProductID = "product_id"
	ColMandatory = "mandatory"
	ColPosition  = "position"
	ColAddedAt   = "added_at"
)
