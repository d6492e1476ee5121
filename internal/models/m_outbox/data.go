package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/models/mutation"
)

type Row struct {
	EventID     string           `spanner:"event_id"`
	EventType   string           `spanner:"event_type"`
	AggregateID string           `spanner:"aggregate_id"`
	Payload     string           `spanner:"payload"`
	Status      string           `spanner:"status"`
	CreatedAt   time.Time        `spanner:"created_at"`
	ProcessedAt spanner.NullTime `spanner:"processed_at"`
}

const Columns = `event_id, event_type, aggregate_id, payload, status, created_at, processed_at`

// BuildInsertMap constructs a map with fields for outbox insertion.
func BuildInsertMap(eventID, eventType, aggregateID string, payload string, status string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     eventID,
		ColEventType:   eventType,
		ColAggregateID: aggregateID,
		ColPayload:     payload,
		ColStatus:      status,
		ColCreatedAt:   createdAt,
		ColProcessedAt: nil,
	}
}

// InsertMutation constructs a mutation for the outbox table.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	return mutation.Insert(TableName, values)
}

// MarkProcessedMutation flips an event to processed.
func MarkProcessedMutation(eventID string, processedAt time.Time) *spanner.Mutation {
	return mutation.Update(TableName, []mutation.Key{{Column: ColEventID, Value: eventID}}, map[string]interface{}{
		ColStatus:      StatusProcessed,
		ColProcessedAt: processedAt,
	})
}
