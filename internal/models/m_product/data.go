package m_product

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

// Row is a products row as decoded by spanner.Row.ToStruct.
type Row struct {
	ProductID   string             `spanner:"product_id"`
	Code        string             `spanner:"code"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	ProductType string             `spanner:"product_type"`
	Category    string             `spanner:"category"`
	Currency    string             `spanner:"currency"`
	Status      string             `spanner:"status"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
	ArchivedAt  spanner.NullTime   `spanner:"archived_at"`
}

// Columns lists the columns of Row in select order.
const Columns = `product_id, code, name, description, product_type, category, currency, status, created_at, updated_at, archived_at`

// InsertMutation builds a spanner.Insert mutation for a product.
// Expected keys are the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map should not include product_id.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, []mutation.Key{{Column: ColProductID, Value: productID}}, values)
}
