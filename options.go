package polyroot

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Solver.
type Option interface {
	apply(*solverConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*solverConfig)

func (f optionFunc) apply(c *solverConfig) { f(c) }

type solverConfig struct {
	tolerance  float64
	plotWidth  int
	plotHeight int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithTolerance sets the relative tolerance on the imaginary part below which
// a root counts as real. Default: 1e-9.
func WithTolerance(tol float64) Option {
	return optionFunc(func(c *solverConfig) {
		c.tolerance = tol
	})
}

// WithPlotSize sets the PNG size used by PlotPNG. Default: 1000x600.
func WithPlotSize(width, height int) Option {
	return optionFunc(func(c *solverConfig) {
		c.plotWidth = width
		c.plotHeight = height
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *solverConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *solverConfig) {
		c.metricsReg = reg
	})
}
