package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Solve Prometheus metrics.
var (
	SolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polyroot",
			Name:      "solve_total",
			Help:      "Total number of solve requests by outcome",
		},
		[]string{"outcome"}, // ok, invalid_input, computation_error, error
	)

	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "polyroot",
			Name:      "solve_duration_seconds",
			Help:      "Root computation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	RootsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polyroot",
			Name:      "roots_total",
			Help:      "Total roots found by kind",
		},
		[]string{"kind"}, // real / complex
	)

	WarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polyroot",
			Name:      "warnings_total",
			Help:      "Total non-fatal solve warnings by code",
		},
		[]string{"code"},
	)

	PlotRenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "polyroot",
			Name:      "plot_render_duration_seconds",
			Help:      "PNG plot rendering duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)
)

var registerSolveOnce sync.Once

// RegisterSolveMetrics registers Prometheus solve metrics. Safe to call more than once.
func RegisterSolveMetrics() {
	registerSolveOnce.Do(func() {
		prometheus.MustRegister(SolveTotal)
		prometheus.MustRegister(SolveDuration)
		prometheus.MustRegister(RootsTotal)
		prometheus.MustRegister(WarningsTotal)
		prometheus.MustRegister(PlotRenderDuration)
	})
}
