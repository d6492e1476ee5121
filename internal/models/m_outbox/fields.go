package m_outbox

const (
	TableName = "outbox_events"

	// PendingIndex serves the relay scan over pending events.
	PendingIndex = "outbox_events_by_status"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"

	StatusPending   = "pending"
	StatusProcessed = "processed"
)
