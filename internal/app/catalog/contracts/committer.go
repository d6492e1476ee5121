package contracts

import (
	"context"

	commitplan "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
)

// Committer applies a collection of mutations atomically.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
