// Package outbox relays committed outbox events to a Redis stream.
package outbox

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
)

// Publisher delivers one event downstream.
type Publisher interface {
	Publish(ctx context.Context, e *contracts.OutboxEvent) error
}

// StreamPublisher appends events to a Redis stream with XADD. MaxLen trims
// the stream approximately; zero keeps every entry.
type StreamPublisher struct {
	client goredis.UniversalClient
	stream string
	maxLen int64
}

func NewStreamPublisher(client goredis.UniversalClient, stream string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *StreamPublisher) Publish(ctx context.Context, e *contracts.OutboxEvent) error {
	args := &goredis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"event_id":     e.EventID,
			"event_type":   e.EventType,
			"aggregate_id": e.AggregateID,
			"payload":      e.PayloadJSON,
			"created_at":   e.CreatedAtUTC.Format(time.RFC3339Nano),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
