package fakes

import (
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
)

// Harness bundles a Writer with the fakes behind it.
type Harness struct {
	Clock     *clock.FakeClock
	Committer *Committer
	Outbox    *OutboxRepo
	Cache     *Cache
	ReadModel *ReadModel
	Writer    *shared.Writer
}

func NewHarness(now time.Time) *Harness {
	h := &Harness{
		Clock:     clock.NewFake(now),
		Committer: &Committer{},
		Outbox:    NewOutboxRepo(),
		Cache:     &Cache{},
		ReadModel: NewReadModel(),
	}
	h.Writer = shared.NewWriter(h.Outbox, h.Committer, h.Clock, h.Cache)
	return h
}
