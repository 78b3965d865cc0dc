package solve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/curve"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
	logpkg "github.com/achernar1030/polyroot/internal/logger"
	"github.com/achernar1030/polyroot/internal/metrics"
)

// Result is the outcome of one solve-and-sample cycle.
type Result struct {
	Polynomial  polynomial.Polynomial
	Roots       roots.Set
	Warnings    []domain.Warning
	Curve       *curve.Curve // nil when NoRealRoots
	NoRealRoots bool
}

// Service validates coefficients, solves for roots, and samples the curve.
type Service struct {
	solver RootSolver
	logger *zap.Logger
}

// New creates a solve service. logger is used when the context carries none; it may be nil.
func New(solver RootSolver, logger *zap.Logger) *Service {
	return &Service{solver: solver, logger: logger}
}

// Solve runs the full cycle for a raw coefficient vector, highest power first.
// Validation and computation errors are terminal; no partial result is returned.
func (s *Service) Solve(ctx context.Context, values []float64) (Result, error) {
	log := s.log(ctx)

	p, err := polynomial.New(values)
	if err != nil {
		metrics.SolveTotal.WithLabelValues("invalid_input").Inc()
		log.Debug("Rejected coefficients", zap.Int("count", len(values)), zap.Error(err))
		return Result{}, fmt.Errorf("validate coefficients: %w", err)
	}

	res := Result{Polynomial: p, Warnings: Warnings(p)}
	for _, w := range res.Warnings {
		metrics.WarningsTotal.WithLabelValues(string(w.Code)).Inc()
		log.Warn("Solve warning",
			zap.String("code", string(w.Code)),
			zap.String("message", w.Message),
			zap.Int("effective_degree", p.EffectiveDegree()),
		)
	}

	start := time.Now()
	set, err := s.solver.Solve(ctx, p)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "computation_error"
		if !errors.Is(err, domain.ErrRootComputation) {
			outcome = "error"
		}
		metrics.SolveTotal.WithLabelValues(outcome).Inc()
		log.Error("Root computation failed", zap.Stringer("polynomial", p), zap.Error(err))
		return Result{}, fmt.Errorf("solve polynomial: %w", err)
	}

	res.Roots = set
	metrics.SolveTotal.WithLabelValues("ok").Inc()
	metrics.RootsTotal.WithLabelValues(string(roots.KindReal)).Add(float64(len(set.Real())))
	metrics.RootsTotal.WithLabelValues(string(roots.KindComplex)).Add(float64(len(set.Complex())))

	if set.HasReal() {
		c := curve.Sample(p, set.Real())
		res.Curve = &c
	} else {
		res.NoRealRoots = true
	}

	log.Debug("Solved polynomial",
		zap.Stringer("polynomial", p),
		zap.Int("roots", set.Len()),
		zap.Int("real", len(set.Real())),
		zap.Int("complex", len(set.Complex())),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// Defaults returns the initial coefficient terms offered to an input form.
func (s *Service) Defaults() []polynomial.Term {
	return polynomial.Defaults().Terms()
}

// log prefers the request-scoped logger so that lines carry the request ID.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logpkg.FromContextOr(ctx, s.logger)
}

// Warnings returns the non-fatal diagnostics for p.
func Warnings(p polynomial.Polynomial) []domain.Warning {
	if !p.IsDegenerate() {
		return nil
	}
	return []domain.Warning{{
		Code: domain.WarnDegenerateLeadingCoefficient,
		Message: fmt.Sprintf(
			"the x^11 coefficient is 0; this may not be a degree 11 equation (solving at degree %d)",
			max(p.EffectiveDegree(), 0),
		),
	}}
}
