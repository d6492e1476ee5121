package m_localization

// Field constants for the product_localizations table, interleaved in products.
const (
	TableName = "product_localizations"

	// LocaleIndex makes locale unique per product.
	LocaleIndex = "localizations_by_locale"

	ColProductID      = "product_id"
	ColLocalizationID = "localization_id"
	ColLocale         = "locale"
	ColName           = "name"
	ColDescription    = "description"
	ColCreatedAt      = "created_at"
	ColUpdatedAt      = "updated_at"
)
