package m_document

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID    string             `spanner:"product_id"`
	DocumentID   string             `spanner:"document_id"`
	DocumentType string             `spanner:"document_type"`
	Description  spanner.NullString `spanner:"description"`
	Mandatory    bool               `spanner:"mandatory"`
	ValidityDays spanner.NullInt64  `spanner:"validity_days"`
	CreatedAt    time.Time          `spanner:"created_at"`
	UpdatedAt    time.Time          `spanner:"updated_at"`
}

const Columns = `product_id, document_id, document_type, description, mandatory, validity_days, created_at, updated_at`

func keys(productID, documentID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColDocumentID, Value: documentID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, documentID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, documentID), values)
}

func DeleteMutation(productID, documentID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, documentID)...)
}
