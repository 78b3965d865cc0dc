package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	logpkg "github.com/achernar1030/polyroot/internal/logger"
	"github.com/achernar1030/polyroot/internal/metrics"
	"github.com/achernar1030/polyroot/internal/render/plot"
	"github.com/achernar1030/polyroot/internal/render/text"
	healthuc "github.com/achernar1030/polyroot/internal/usecase/health"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

const defaultMaxBodyBytes = 64 << 10

// SolveUseCase runs one solve cycle.
type SolveUseCase interface {
	Solve(ctx context.Context, values []float64) (solve.Result, error)
	Defaults() []polynomial.Term
}

// PlotRenderer rasterises a figure to PNG.
type PlotRenderer interface {
	PNG(fig plot.Figure, w io.Writer) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the polyroot HTTP API.
type Server struct {
	solver        SolveUseCase
	renderer      PlotRenderer
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	solver SolveUseCase,
	renderer PlotRenderer,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		solver:       solver,
		renderer:     renderer,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		coefficientCountHandler,
		sentinelHandler(domain.ErrInvalidInputType, http.StatusBadRequest, codeInvalidInputType),
		sentinelHandler(domain.ErrRootComputation, http.StatusUnprocessableEntity, codeRootComputation),
		sentinelHandler(domain.ErrNoRealRoots, http.StatusUnprocessableEntity, codeNoRealRoots),
	}
	return s
}

// WithMaxBodyBytes caps request body size.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r gochi.Router) {
		r.Get("/coefficients/defaults", s.GetDefaults)
		r.Post("/roots", s.SolveRoots)
		r.Post("/plot", s.RenderPlot)
		r.Post("/report", s.RenderReport)
	})
}

// GetDefaults handles GET /v1/coefficients/defaults.
func (s *Server) GetDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NewDefaultsResponse(s.solver.Defaults()))
}

// SolveRoots handles POST /v1/roots.
func (s *Server) SolveRoots(w http.ResponseWriter, r *http.Request) {
	res, ok := s.solve(w, r)
	if !ok {
		return
	}

	withSamples := true
	if v := r.URL.Query().Get("samples"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "samples must be a boolean")
			return
		}
		withSamples = b
	}

	writeJSON(w, http.StatusOK, NewRootsResponse(res, withSamples))
}

// RenderPlot handles POST /v1/plot.
func (s *Server) RenderPlot(w http.ResponseWriter, r *http.Request) {
	res, ok := s.solve(w, r)
	if !ok {
		return
	}
	if res.Curve == nil {
		s.handleDomainError(r.Context(), w, fmt.Errorf("render plot: %w", domain.ErrNoRealRoots))
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := s.renderer.PNG(plot.NewFigure(*res.Curve), &buf); err != nil {
		s.handleDomainError(r.Context(), w, fmt.Errorf("render plot: %w", err))
		return
	}
	metrics.PlotRenderDuration.Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// RenderReport handles POST /v1/report.
func (s *Server) RenderReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.solve(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text.Report(res, nil))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": string(report.Status),
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// solve decodes the request body and runs the use case, writing the error
// response itself when it returns false.
func (s *Server) solve(w http.ResponseWriter, r *http.Request) (solve.Result, bool) {
	values, err := s.decodeCoefficients(w, r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInputType) {
			s.handleDomainError(r.Context(), w, err)
		} else {
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		}
		return solve.Result{}, false
	}

	res, err := s.solver.Solve(r.Context(), values)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return solve.Result{}, false
	}
	annotate(r.Context(),
		zap.Int("effective_degree", res.Polynomial.EffectiveDegree()),
		zap.Int("real_roots", len(res.Roots.Real())),
		zap.Int("complex_roots", len(res.Roots.Complex())),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, true
}

// decodeCoefficients reads {"coefficients": [...]}. A missing, null, or
// non-array field, or non-numeric entries, are ErrInvalidInputType; anything
// else that fails to parse is a plain bad request.
func (s *Server) decodeCoefficients(w http.ResponseWriter, r *http.Request) ([]float64, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var raw struct {
		Coefficients json.RawMessage `json:"coefficients"`
	}
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, fmt.Errorf("request body exceeds %d bytes", mbe.Limit)
		}
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if len(raw.Coefficients) == 0 || bytes.Equal(raw.Coefficients, []byte("null")) {
		return nil, domain.InvalidInputTypef("coefficients must be a list of numbers")
	}
	var values []float64
	if err := json.Unmarshal(raw.Coefficients, &values); err != nil {
		return nil, domain.InvalidInputTypef("coefficients must be a list of numbers")
	}
	if values == nil {
		values = []float64{}
	}
	return values, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"code":"internal_error","message":"failed to encode response"}`+"\n")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the client-facing message for a domain error
// without exposing internals such as the numeric cause.
func safeDomainMessage(err error) string {
	var cce *domain.CoefficientCountError
	if errors.As(err, &cce) {
		return cce.Error()
	}
	if errors.Is(err, domain.ErrInvalidInputType) {
		return "coefficients must be a list of 12 finite numbers"
	}
	sentinels := []error{
		domain.ErrRootComputation,
		domain.ErrNoRealRoots,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// coefficientCountHandler handles ErrInvalidCoefficientCount, echoing the received count.
func coefficientCountHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidCoefficientCount) {
		return false
	}
	resp := ErrorResponse{Code: codeInvalidCoefficientCount, Message: msg}
	var cce *domain.CoefficientCountError
	if errors.As(err, &cce) {
		got := cce.Got
		resp.Count = &got
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logpkg.FromContextOr(ctx, s.logger)
	log.Warn("domain error", zap.Error(err))
	annotate(ctx, zap.NamedError("solve_error", err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
