package m_document

// Field constants for the product_document_requirements table, interleaved in products.
const (
	TableName = "product_document_requirements"

	// TypeIndex makes document_type unique per product.
	TypeIndex = "document_requirements_by_type"

	ColProductID    = "product_id"
	ColDocumentID   = "document_id"
	ColDocumentType = "document_type"
	ColDescription  = "description"
	ColMandatory    = "mandatory"
	ColValidityDays = "validity_days"
	ColCreatedAt    = "created_at"
	ColUpdatedAt    = "updated_at"
)
