package fakes

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/repo"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Committer records applied plans. Err makes Apply fail without recording.
type Committer struct {
	mu    sync.Mutex
	Plans []*commitplan.Plan
	Err   error
}

func (c *Committer) Apply(_ context.Context, plan *commitplan.Plan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Plans = append(c.Plans, plan)
	return nil
}

// Calls returns how many plans were applied.
func (c *Committer) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Plans)
}

// LastPlan returns the most recent plan or nil.
func (c *Committer) LastPlan() *commitplan.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Plans) == 0 {
		return nil
	}
	return c.Plans[len(c.Plans)-1]
}

// OutboxRepo builds the real outbox mutations and keeps the events it saw.
type OutboxRepo struct {
	mu        sync.Mutex
	inner     *repo.OutboxRepo
	Events    []*contracts.OutboxEvent
	Processed []string
}

var _ contracts.OutboxRepo = (*OutboxRepo)(nil)

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{inner: repo.NewOutboxRepo()}
}

func (o *OutboxRepo) InsertMut(e *contracts.OutboxEvent) *spanner.Mutation {
	o.mu.Lock()
	o.Events = append(o.Events, e)
	o.mu.Unlock()
	return o.inner.InsertMut(e)
}

func (o *OutboxRepo) MarkProcessedMut(eventID string, processedAt time.Time) *spanner.Mutation {
	o.mu.Lock()
	o.Processed = append(o.Processed, eventID)
	o.mu.Unlock()
	return o.inner.MarkProcessedMut(eventID, processedAt)
}

// EventTypes lists the recorded event types in order.
func (o *OutboxRepo) EventTypes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.Events))
	for _, e := range o.Events {
		out = append(out, e.EventType)
	}
	return out
}

// Cache records invalidated product ids.
type Cache struct {
	mu          sync.Mutex
	Invalidated []string
}

func (c *Cache) Invalidate(_ context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, productID)
}
