package m_fee_structure

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID      string             `spanner:"product_id"`
	FeeStructureID string             `spanner:"fee_structure_id"`
	Name           string             `spanner:"name"`
	Description    spanner.NullString `spanner:"description"`
	EffectiveFrom  time.Time          `spanner:"effective_from"`
	EffectiveTo    spanner.NullTime   `spanner:"effective_to"`
	CreatedAt      time.Time          `spanner:"created_at"`
	UpdatedAt      time.Time          `spanner:"updated_at"`
}

const Columns = `product_id, fee_structure_id, name, description, effective_from, effective_to, created_at, updated_at`

func keys(productID, feeStructureID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColFeeStructureID, Value: feeStructureID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, feeStructureID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, feeStructureID), values)
}

// DeleteMutation removes the structure; components and rules go with it
// through ON DELETE CASCADE.
func DeleteMutation(productID, feeStructureID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, feeStructureID)...)
}
