package m_fee_component

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID         string              `spanner:"product_id"`
	FeeStructureID    string              `spanner:"fee_structure_id"`
	FeeComponentID    string              `spanner:"fee_component_id"`
	Name              string              `spanner:"name"`
	FeeType           string              `spanner:"fee_type"`
	AmountNumerator   spanner.NullInt64   `spanner:"amount_numerator"`
	AmountDenominator spanner.NullInt64   `spanner:"amount_denominator"`
	Rate              spanner.NullNumeric `spanner:"rate"`
	Frequency         string              `spanner:"frequency"`
	CreatedAt         time.Time           `spanner:"created_at"`
	UpdatedAt         time.Time           `spanner:"updated_at"`
}

const Columns = `product_id, fee_structure_id, fee_component_id, name, fee_type,
	amount_numerator, amount_denominator, rate, frequency, created_at, updated_at`

func keys(productID, feeStructureID, feeComponentID string) []mutation.Key {
	return []mutation.Key{
		{Column: ColProductID, Value: productID},
		{Column: ColFeeStructureID, Value: feeStructureID},
		{Column: ColFeeComponentID, Value: feeComponentID},
	}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, feeStructureID, feeComponentID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, feeStructureID, feeComponentID), values)
}

func DeleteMutation(productID, feeStructureID, feeComponentID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, feeStructureID, feeComponentID)...)
}
