package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// Relay publishes pending outbox events in creation order and marks them
// processed. Delivery is at least once: an event published before a failed
// mark is published again on the next pass.
type Relay struct {
	reader    contracts.OutboxReader
	repo      contracts.OutboxRepo
	committer contracts.Committer
	publisher Publisher
	clock     clock.Clock
	batchSize int
}

func NewRelay(
	reader contracts.OutboxReader,
	repo contracts.OutboxRepo,
	committer contracts.Committer,
	publisher Publisher,
	clk clock.Clock,
	batchSize int,
) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{
		reader:    reader,
		repo:      repo,
		committer: committer,
		publisher: publisher,
		clock:     clk,
		batchSize: batchSize,
	}
}

// RunOnce handles one batch and returns how many events were marked.
// Publishing stops at the first failure so later events never overtake it.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.reader.ListPendingEvents(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	plan := commitplan.NewPlan()
	var pubErr error
	for _, e := range events {
		if err := r.publisher.Publish(ctx, e); err != nil {
			pubErr = fmt.Errorf("publish %s: %w", e.EventID, err)
			break
		}
		plan.Add(r.repo.MarkProcessedMut(e.EventID, r.clock.Now()))
	}

	if !plan.IsEmpty() {
		if err := r.committer.Apply(ctx, plan); err != nil {
			return 0, fmt.Errorf("mark events processed: %w", err)
		}
	}
	return plan.Len(), pubErr
}

// Run polls until ctx is done. A pass that filled a whole batch is followed
// immediately by the next one.
func (r *Relay) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		n, err := r.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			logging.Warn("outbox relay pass failed", "marked", n, "err", err)
		} else if n > 0 {
			logging.Debug("outbox events relayed", "count", n)
		}
		if err == nil && n == r.batchSize && ctx.Err() == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
