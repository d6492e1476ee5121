package m_pricing

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID         string              `spanner:"product_id"`
	PricingID         string              `spanner:"pricing_id"`
	Name              string              `spanner:"name"`
	PricingType       string              `spanner:"pricing_type"`
	AmountNumerator   spanner.NullInt64   `spanner:"amount_numerator"`
	AmountDenominator spanner.NullInt64   `spanner:"amount_denominator"`
	Rate              spanner.NullNumeric `spanner:"rate"`
	DiscountPercent   spanner.NullNumeric `spanner:"discount_percent"`
	DiscountStartDate spanner.NullTime    `spanner:"discount_start_date"`
	DiscountEndDate   spanner.NullTime    `spanner:"discount_end_date"`
	EffectiveFrom     time.Time           `spanner:"effective_from"`
	EffectiveTo       spanner.NullTime    `spanner:"effective_to"`
	CreatedAt         time.Time           `spanner:"created_at"`
	UpdatedAt         time.Time           `spanner:"updated_at"`
}

const Columns = `product_id, pricing_id, name, pricing_type, amount_numerator, amount_denominator, rate,
	discount_percent, discount_start_date, discount_end_date, effective_from, effective_to, created_at, updated_at`

func keys(productID, pricingID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColPricingID, Value: pricingID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, pricingID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, pricingID), values)
}

func DeleteMutation(productID, pricingID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, pricingID)...)
}
