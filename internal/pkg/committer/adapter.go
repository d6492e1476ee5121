package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

var _ Reader = (*spanner.ReadWriteTransaction)(nil)

// Adapter applies plans against Spanner.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply runs the guards of the plan and buffers every mutation in a single
// read-write transaction. Spanner errors are returned as-is so callers can
// inspect spanner.ErrCode.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		for _, g := range plan.Guards() {
			if err := g(ctx, tx); err != nil {
				return err
			}
		}
		return tx.BufferWrite(plan.Mutations())
	})
	return err
}
