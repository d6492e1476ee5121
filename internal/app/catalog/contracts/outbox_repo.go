package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
)

// OutboxRepo is the write-side repository for the transactional outbox.
type OutboxRepo interface {
	InsertMut(e *OutboxEvent) *spanner.Mutation
	MarkProcessedMut(eventID string, processedAt time.Time) *spanner.Mutation
}

// OutboxReader lists events the relay still has to publish, oldest first.
type OutboxReader interface {
	ListPendingEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
}

// OutboxEvent is an event persisted to the outbox table.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}
