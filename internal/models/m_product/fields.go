package m_product

// Field constants for the products table.
const (
	TableName = "products"

	// CodeIndex enforces unique product codes.
	CodeIndex = "products_by_code"

	ColProductID   = "product_id"
	ColCode        = "code"
	ColName        = "name"
	ColDescription = "description"
	ColProductType = "product_type"
	ColCategory    = "category"
	ColCurrency    = "currency"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
	ColArchivedAt  = "archived_at"
)
