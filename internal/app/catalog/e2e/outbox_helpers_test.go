package e2e

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type outboxRow struct {
	EventType string `spanner:"event_type"`
	Status    string `spanner:"status"`
}

func outboxFor(ctx context.Context, t *testing.T, aggregateID string) []outboxRow {
	t.Helper()
	iter := spClient.Single().Query(ctx, spanner.Statement{
		SQL: `SELECT event_type, status FROM outbox_events
		      WHERE aggregate_id = @id ORDER BY created_at, event_id`,
		Params: map[string]any{"id": aggregateID},
	})
	defer iter.Stop()

	var out []outboxRow
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)
		var r outboxRow
		require.NoError(t, row.ToStruct(&r))
		out = append(out, r)
	}
}

func eventTypes(rows []outboxRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EventType)
	}
	return out
}
