package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/cmplx"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/achernar1030/polyroot/internal/config"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	logpkg "github.com/achernar1030/polyroot/internal/logger"
	"github.com/achernar1030/polyroot/internal/metrics"
	"github.com/achernar1030/polyroot/internal/render/plot"
	"github.com/achernar1030/polyroot/internal/solver"
	chiTransport "github.com/achernar1030/polyroot/internal/transport/chi"
	healthuc "github.com/achernar1030/polyroot/internal/usecase/health"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
	"github.com/achernar1030/polyroot/internal/version"
)

func newServeCommand() *cobra.Command {
	var env string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, env)
		},
	}
	c.Flags().StringVar(&env, "env", config.GetEnv(), "config environment (config/<env>.yaml)")
	return c
}

func runServe(cmd *cobra.Command, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if l := logLevel(cmd); l != "" {
		level = l
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting polyroot API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Float64("real_tolerance", cfg.Solver.RealTolerance),
	)

	metrics.RegisterSolveMetrics()

	slv := solver.New(cfg.Solver.RealTolerance)
	renderer, err := plot.NewRenderer(cfg.Plot.Width, cfg.Plot.Height)
	if err != nil {
		return fmt.Errorf("create plot renderer: %w", err)
	}

	solveSvc := solve.New(slv, logger)
	rendererCheck := healthuc.CheckerFunc(func(context.Context) error {
		return renderer.HealthCheck()
	})
	healthSvc := healthuc.New(map[string]healthuc.Checker{
		"solver":   solverHealthChecker(slv),
		"renderer": rendererCheck,
	})

	server := chiTransport.NewServer(solveSvc, renderer, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// solverHealthChecker solves x^11 - 1 and expects exactly one real root
// and a vanishing residual at every root.
func solverHealthChecker(slv *solver.Solver) healthuc.Checker {
	coeffs := polynomial.Defaults().Coefficients()
	coeffs[polynomial.Size-1] = -1
	p, err := polynomial.New(coeffs)
	return healthuc.CheckerFunc(func(ctx context.Context) error {
		if err != nil {
			return err
		}
		set, err := slv.Solve(ctx, p)
		if err != nil {
			return fmt.Errorf("solver health check: %w", err)
		}
		if set.Len() != polynomial.Degree || len(set.Real()) != 1 {
			return fmt.Errorf("solver health check: got %d roots, %d real", set.Len(), len(set.Real()))
		}
		for _, r := range set.All() {
			if res := cmplx.Abs(p.EvalComplex(r.Value)); res > 1e-9 {
				return fmt.Errorf("solver health check: residual %g at %v", res, r.Value)
			}
		}
		return nil
	})
}
