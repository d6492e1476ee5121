package committer

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Reader is the read side of the transaction a plan is applied in.
type Reader interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// Guard runs inside the commit transaction before the mutations are
// buffered. A non-nil error aborts the commit.
type Guard func(ctx context.Context, tx Reader) error

// Plan is an ordered list of mutations applied in one transaction.
type Plan struct {
	mutations []*spanner.Mutation
	guards    []Guard
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends m. Nil mutations are ignored so repos can return nil for no-ops.
func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

// AddAll appends every non-nil mutation.
func (p *Plan) AddAll(ms ...*spanner.Mutation) {
	for _, m := range ms {
		p.Add(m)
	}
}

// Guard registers a check that reads in the commit transaction.
func (p *Plan) Guard(g Guard) {
	if g == nil {
		return
	}
	p.guards = append(p.guards, g)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}

func (p *Plan) Guards() []Guard {
	return p.guards
}
