package polyroot

import "github.com/achernar1030/polyroot/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInputType        = domain.ErrInvalidInputType
	ErrInvalidCoefficientCount = domain.ErrInvalidCoefficientCount
	ErrRootComputation         = domain.ErrRootComputation
	ErrNoRealRoots             = domain.ErrNoRealRoots
)
