package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

// MarshalDomainEventPayload converts a domain event into the JSON payload
// stored in the outbox.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"code":         e.Code,
			"name":         e.Name,
			"product_type": string(e.ProductType),
			"category":     e.Category,
			"currency":     e.Currency,
			"created_at":   e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"changes":     e.Changes,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.ProductStatusChangedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"from":        string(e.From),
			"to":          string(e.To),
			"occurred_at": e.OccurredAt(),
		}

	case *domain.EntityEvent:
		payload = map[string]interface{}{
			"entity":       e.Entity,
			"entity_id":    e.EntityID,
			"aggregate_id": e.Aggregate,
			"occurred_at":  e.OccurredAt(),
		}
		if len(e.Changes) > 0 {
			payload["changes"] = e.Changes
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}
