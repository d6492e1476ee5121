package m_lifecycle

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID     string             `spanner:"product_id"`
	LifecycleID   string             `spanner:"lifecycle_id"`
	Status        string             `spanner:"status"`
	EffectiveFrom time.Time          `spanner:"effective_from"`
	EffectiveTo   spanner.NullTime   `spanner:"effective_to"`
	Reason        spanner.NullString `spanner:"reason"`
	CreatedAt     time.Time          `spanner:"created_at"`
	UpdatedAt     time.Time          `spanner:"updated_at"`
}

const Columns = `product_id, lifecycle_id, status, effective_from, effective_to, reason, created_at, updated_at`

func keys(productID, lifecycleID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColLifecycleID, Value: lifecycleID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, lifecycleID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, lifecycleID), values)
}

func DeleteMutation(productID, lifecycleID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, lifecycleID)...)
}
