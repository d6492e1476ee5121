package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

func TestMarshalDomainEventPayload_ProductCreated(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := domain.NewProduct("p-1", domain.ProductDetails{
		Code: "LN-1", Name: "Loan", ProductType: "loan", Category: "lending", Currency: "EUR",
	}, now)
	require.NoError(t, err)
	require.Len(t, p.DomainEvents(), 1)

	raw, err := MarshalDomainEventPayload(p.DomainEvents()[0])
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "p-1", got["product_id"])
	assert.Equal(t, "loan", got["product_type"])
	assert.Equal(t, "EUR", got["currency"])
}

func TestMarshalDomainEventPayload_Deleted(t *testing.T) {
	ev := domain.DeletedEvent(domain.EntityLimit, "p-1", "l-1", time.Now())

	raw, err := MarshalDomainEventPayload(ev)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "limit", got["entity"])
	assert.Equal(t, "l-1", got["entity_id"])
	assert.NotContains(t, got, "changes")
	assert.Equal(t, "limit.deleted", ev.EventType())
}

func TestMarshalDomainEventPayload_Nil(t *testing.T) {
	raw, err := MarshalDomainEventPayload(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", raw)
}
