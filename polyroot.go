package polyroot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/render/plot"
	"github.com/achernar1030/polyroot/internal/render/text"
	"github.com/achernar1030/polyroot/internal/solver"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

const (
	defaultPlotWidth  = 1000
	defaultPlotHeight = 600
)

// Solver is the polyroot SDK entry point. It is safe for concurrent use.
type Solver struct {
	svc      *solve.Service
	renderer *plot.Renderer
	obs      *observer
}

// New creates a Solver.
func New(opts ...Option) (*Solver, error) {
	cfg := &solverConfig{
		plotWidth:  defaultPlotWidth,
		plotHeight: defaultPlotHeight,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.tolerance < 0 || cfg.tolerance >= 1 {
		return nil, fmt.Errorf("polyroot: tolerance must be in [0, 1), got %g", cfg.tolerance)
	}

	renderer, err := plot.NewRenderer(cfg.plotWidth, cfg.plotHeight)
	if err != nil {
		return nil, fmt.Errorf("polyroot: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Solver{
		svc:      solve.New(solver.New(cfg.tolerance), cfg.logger),
		renderer: renderer,
		obs:      obs,
	}, nil
}

// Defaults returns the default coefficients, highest power first:
// 1 for x^11 and 0 elsewhere.
func Defaults() []float64 {
	return polynomial.Defaults().Coefficients()
}

// Solve finds every root of the polynomial with the given 12 coefficients,
// highest power first.
func (s *Solver) Solve(ctx context.Context, coeffs []float64) (res Result, err error) {
	defer func(start time.Time) { s.obs.observe("solve", start, err) }(time.Now())

	r, err := s.svc.Solve(ctx, coeffs)
	if err != nil {
		return Result{}, fmt.Errorf("solve: %w", err)
	}
	return resultFromSolve(r), nil
}

// PlotPNG writes a PNG plot of the curve and its real roots to w.
// It returns ErrNoRealRoots when there is nothing to plot.
func (s *Solver) PlotPNG(ctx context.Context, coeffs []float64, w io.Writer) (err error) {
	defer func(start time.Time) { s.obs.observe("plot", start, err) }(time.Now())

	r, err := s.svc.Solve(ctx, coeffs)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if r.Curve == nil {
		return fmt.Errorf("plot: %w", domain.ErrNoRealRoots)
	}
	if err := s.renderer.PNG(plot.NewFigure(*r.Curve), w); err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	return nil
}

// Report returns the plain-text report: roots to 6 decimals, the real roots
// and their plot range, and the complex roots as a + bi.
func (s *Solver) Report(ctx context.Context, coeffs []float64) (report string, err error) {
	defer func(start time.Time) { s.obs.observe("report", start, err) }(time.Now())

	r, err := s.svc.Solve(ctx, coeffs)
	if err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	return text.Report(r, nil), nil
}
