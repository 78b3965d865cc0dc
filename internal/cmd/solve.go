package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
	logpkg "github.com/achernar1030/polyroot/internal/logger"
	"github.com/achernar1030/polyroot/internal/render/plot"
	"github.com/achernar1030/polyroot/internal/render/text"
	"github.com/achernar1030/polyroot/internal/solver"
	chiTransport "github.com/achernar1030/polyroot/internal/transport/chi"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

type solveOptions struct {
	plotPath  string
	asJSON    bool
	samples   bool
	tolerance float64
	width     int
	height    int
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	c := &cobra.Command{
		Use:   "solve [--] c11 c10 c9 c8 c7 c6 c5 c4 c3 c2 c1 c0",
		Short: "Solve one polynomial and print its roots",
		Long: `Solve c11*x^11 + c10*x^10 + ... + c1*x + c0 = 0.

Exactly 12 coefficients are required, highest power first. Put -- before the
coefficients when any of them is negative, e.g.

  polyroot solve -- 1 0 0 0 0 0 0 0 0 0 0 -1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, opts)
		},
	}
	c.Flags().StringVar(&opts.plotPath, "plot", "", "write a PNG plot of the curve to this path")
	c.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON instead of a report")
	c.Flags().BoolVar(&opts.samples, "samples", false, "include curve samples in JSON output")
	c.Flags().Float64Var(&opts.tolerance, "tolerance", roots.DefaultTolerance, "relative tolerance for classifying a root as real")
	c.Flags().IntVar(&opts.width, "width", 1000, "plot width in pixels")
	c.Flags().IntVar(&opts.height, "height", 600, "plot height in pixels")
	return c
}

func runSolve(cmd *cobra.Command, args []string, opts solveOptions) error {
	logger, err := logpkg.NewLogger("cli", logLevel(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx := logpkg.ContextWithLogger(cmd.Context(), logger)

	values, err := parseCoefficients(args)
	if err != nil {
		return err
	}

	svc := solve.New(solver.New(opts.tolerance), logger)
	res, err := svc.Solve(ctx, values)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(chiTransport.NewRootsResponse(res, opts.samples)); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		if _, err := io.WriteString(out, text.Report(res, headingStyler(out))); err != nil {
			return err
		}
	}

	if opts.plotPath == "" {
		return nil
	}
	if res.Curve == nil {
		logger.Warn("plot skipped", zap.String("path", opts.plotPath), zap.Error(domain.ErrNoRealRoots))
		return nil
	}
	if err := writePlot(opts, res); err != nil {
		return err
	}
	logger.Info("plot written", zap.String("path", opts.plotPath))
	return nil
}

// parseCoefficients converts positional arguments to numbers. The count is
// left to the solve use case so the CLI reports the same error as the API.
func parseCoefficients(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, domain.InvalidInputTypef("coefficient for %s is %q, not a number",
				polynomial.Label(len(args)-1-i), a)
		}
		values[i] = v
	}
	return values, nil
}

func writePlot(opts solveOptions, res solve.Result) error {
	renderer, err := plot.NewRenderer(opts.width, opts.height)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(opts.plotPath))
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if err := renderer.PNG(plot.NewFigure(*res.Curve), f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render plot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close plot file: %w", err)
	}
	return nil
}

// headingStyler renders section headings bold when out is a terminal.
func headingStyler(out io.Writer) text.Styler {
	style := lipgloss.NewRenderer(out).NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	return func(heading string) string {
		return style.Render(heading)
	}
}
