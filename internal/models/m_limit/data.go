package m_limit

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID            string            `spanner:"product_id"`
	LimitID              string            `spanner:"limit_id"`
	LimitType            string            `spanner:"limit_type"`
	Period               string            `spanner:"period"`
	MinAmountNumerator   spanner.NullInt64 `spanner:"min_amount_numerator"`
	MinAmountDenominator spanner.NullInt64 `spanner:"min_amount_denominator"`
	MaxAmountNumerator   spanner.NullInt64 `spanner:"max_amount_numerator"`
	MaxAmountDenominator spanner.NullInt64 `spanner:"max_amount_denominator"`
	MaxCount             spanner.NullInt64 `spanner:"max_count"`
	CreatedAt            time.Time         `spanner:"created_at"`
	UpdatedAt            time.Time         `spanner:"updated_at"`
}

const Columns = `product_id, limit_id, limit_type, period, min_amount_numerator, min_amount_denominator,
	max_amount_numerator, max_amount_denominator, max_count, created_at, updated_at`

func keys(productID, limitID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColLimitID, Value: limitID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, limitID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, limitID), values)
}

func DeleteMutation(productID, limitID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, limitID)...)
}
