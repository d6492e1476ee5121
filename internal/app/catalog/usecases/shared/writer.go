package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/models/m_outbox"
	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// EventSource is any entity that collected domain events.
type EventSource interface {
	DomainEvents() []domain.DomainEvent
}

type committable interface {
	ClearEvents()
	Changes() *domain.ChangeTracker
}

// Writer is the tail of every write use case: outbox events, one commit and
// cache invalidation.
type Writer struct {
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	Clock      clock.Clock
	Cache      contracts.ProductCache
}

func NewWriter(outboxRepo contracts.OutboxRepo, committer contracts.Committer, clk clock.Clock, cache contracts.ProductCache) *Writer {
	if cache == nil {
		cache = contracts.NoopProductCache{}
	}
	return &Writer{OutboxRepo: outboxRepo, Committer: committer, Clock: clk, Cache: cache}
}

func (w *Writer) Now() time.Time { return w.Clock.Now() }

// AddEvents appends an outbox insert for every event of the sources.
func (w *Writer) AddEvents(plan *commitplan.Plan, sources ...EventSource) error {
	now := w.Clock.Now()
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, ev := range src.DomainEvents() {
			if err := w.AddEvent(plan, ev, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddEvent appends a single event, for events without an entity (deletions).
func (w *Writer) AddEvent(plan *commitplan.Plan, ev domain.DomainEvent, now time.Time) error {
	payload, err := MarshalDomainEventPayload(ev)
	if err != nil {
		return err
	}
	plan.Add(w.OutboxRepo.InsertMut(&contracts.OutboxEvent{
		EventID:      uuid.New().String(),
		EventType:    ev.EventType(),
		AggregateID:  ev.AggregateID(),
		PayloadJSON:  payload,
		Status:       m_outbox.StatusPending,
		CreatedAtUTC: now.UTC(),
	}))
	return nil
}

// Commit adds the events of sources to plan, applies it and drops the cached
// views of productID. An empty productID skips invalidation. Sources that
// track changes are reset once the commit succeeded.
func (w *Writer) Commit(ctx context.Context, plan *commitplan.Plan, productID string, sources ...EventSource) error {
	if err := w.AddEvents(plan, sources...); err != nil {
		return err
	}
	if plan.IsEmpty() {
		return nil
	}
	if err := w.Committer.Apply(ctx, plan); err != nil {
		logging.Warn("commit failed", "product_id", productID, "mutations", plan.Len(), "err", err)
		return err
	}
	for _, src := range sources {
		if c, ok := src.(committable); ok {
			c.ClearEvents()
			c.Changes().Reset()
		}
	}
	if productID != "" {
		w.Cache.Invalidate(ctx, productID)
	}
	return nil
}
