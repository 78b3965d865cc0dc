package solve

import (
	"context"

	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
)

// RootSolver computes the classified roots of a polynomial.
type RootSolver interface {
	Solve(ctx context.Context, p polynomial.Polynomial) (roots.Set, error)
}
