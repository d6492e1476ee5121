package m_pricing

// Field constants for the product_pricing table, interleaved in products.
const (
	TableName = "product_pricing"

	ColProductID         = "product_id"
	ColPricingID         = "pricing_id"
	ColName              = "name"
	ColPricingType       = "pricing_type"
	ColAmountNumerator   = "amount_numerator"
	ColAmountDenominator = "amount_denominator"
	ColRate              = "rate"
	ColDiscountPercent   = "discount_percent"
	ColDiscountStartDate = "discount_start_date"
	ColDiscountEndDate   = "discount_end_date"
	ColEffectiveFrom     = "effective_from"
	ColEffectiveTo       = "effective_to"
	ColCreatedAt         = "created_at"
	ColUpdatedAt         = "updated_at"
)
