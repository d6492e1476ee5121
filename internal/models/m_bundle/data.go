package m_bundle

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	BundleID    string             `spanner:"bundle_id"`
	Code        string             `spanner:"code"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	Status      string             `spanner:"status"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
}

const Columns = `bundle_id, code, name, description, status, created_at, updated_at`

func key(bundleID string) []mutation.Key {
	return []mutation.Key{{Column: ColBundleID, Value: bundleID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(bundleID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, key(bundleID), values)
}

// DeleteMutation removes the bundle and, by cascade, its items.
func DeleteMutation(bundleID string) *spanner.Mutation {
	return mutation.Delete(TableName, key(bundleID)...)
}
