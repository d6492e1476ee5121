package m_localization

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	ProductID      string             `spanner:"product_id"`
	LocalizationID string             `spanner:"localization_id"`
	Locale         string             `spanner:"locale"`
	Name           string             `spanner:"name"`
	Description    spanner.NullString `spanner:"description"`
	CreatedAt      time.Time          `spanner:"created_at"`
	UpdatedAt      time.Time          `spanner:"updated_at"`
}

const Columns = `product_id, localization_id, locale, name, description, created_at, updated_at`

func keys(productID, localizationID string) []mutation.Key {
	return []mutation.Key{{Column: ColProductID, Value: productID}, {Column: ColLocalizationID, Value: localizationID}}
}

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

func UpdateMutation(productID, localizationID string, values map[string]interface{}) *spanner.Mutation {
	return mutation.Update(TableName, keys(productID, localizationID), values)
}

func DeleteMutation(productID, localizationID string) *spanner.Mutation {
	return mutation.Delete(TableName, keys(productID, localizationID)...)
}
