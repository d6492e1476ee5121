package m_limit

// Field constants for the product_limits table, interleaved in products.
const (
	TableName = "product_limits"

	ColProductID            = "product_id"
	ColLimitID              = "limit_id"
	ColLimitType            = "limit_type"
	ColPeriod               = "period"
	ColMinAmountNumerator   = "min_amount_numerator"
	ColMinAmountDenominator = "min_amount_denominator"
	ColMaxAmountNumerator   = "max_amount_numerator"
	ColMaxAmountDenominator = "max_amount_denominator"
	ColMaxCount             = "max_count"
	ColCreatedAt            = "created_at"
	ColUpdatedAt            = "updated_at"
)
