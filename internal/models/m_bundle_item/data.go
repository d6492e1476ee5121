package m_bundle_item

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	BundleID  string    `spanner:"bundle_id"`
	ProductID string    `spanner:"product_id"`
	Mandatory bool      `spanner:"mandatory"`
	Position  int64     `spanner:"position"`
	AddedAt   time.Time `spanner:"added_at"`
}

const Columns = `bundle_id, product_id, mandatory, position, added_at`

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func DeleteMutation(bundleID, productID string) *spanner.Mutation {
	return mutation.Delete(TableName,
		mutation.Key{Column: ColBundleID, Value: bundleID},
		mutation.Key{Column: ColProductID, Value: productID},
	)
}
