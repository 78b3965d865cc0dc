package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/achernar1030/polyroot/internal/logger"
	"github.com/achernar1030/polyroot/internal/render/plot"
	"github.com/achernar1030/polyroot/internal/solver"
	healthuc "github.com/achernar1030/polyroot/internal/usecase/health"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := JSONRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("companion exploded")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/roots", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if e := decodeError(t, rr); e.Code != codeInternalError {
		t.Errorf("code = %q", e.Code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected one panic log entry")
	}
}

func TestJSONRecoverer_AbortHandlerPropagates(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", r)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var ctxLoggerSet bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLoggerSet = logpkg.FromContext(r.Context()).Core().Enabled(zapcore.InfoLevel)
		w.WriteHeader(http.StatusTeapot)
	})
	h := chiMiddleware.RequestID(WideEventMiddleware(zap.New(core))(inner))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/roots", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
	if !ctxLoggerSet {
		t.Error("request logger not stored in context")
	}

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d http_request entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field = %v", fields["status"])
	}
	if fields["path"] != "/v1/roots" {
		t.Errorf("path field = %v", fields["path"])
	}
	if fields["request_id"] == "" {
		t.Error("request_id field empty")
	}
}

func TestWideEventMiddleware_CarriesAnnotations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		annotate(r.Context(), zap.Int("real_roots", 3))
		w.WriteHeader(http.StatusOK)
	})
	h := chiMiddleware.RequestID(WideEventMiddleware(zap.New(core))(inner))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/roots", http.NoBody))

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	if got := entries[0].ContextMap()["real_roots"]; got != int64(3) {
		t.Errorf("real_roots = %v, want 3", got)
	}
}

func TestAnnotate_OutsideMiddlewareIsNoop(t *testing.T) {
	annotate(httptest.NewRequest(http.MethodGet, "/", http.NoBody).Context(), zap.Int("x", 1))
}

func TestRouter_WideEventHasSolveFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewRouter(newTestServer(t), nil, zap.New(core))
	do(t, h, http.MethodPost, "/v1/roots", unitRootsBody)

	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["effective_degree"] != int64(11) || fields["real_roots"] != int64(1) {
		t.Errorf("fields = %v", fields)
	}
}

func TestRouter_NilLogger(t *testing.T) {
	renderer, err := plot.NewRenderer(400, 300)
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(solve.New(solver.New(0), nil), renderer, healthuc.New(nil), nil)
	h := NewRouter(srv, nil, nil)

	if rr := do(t, h, http.MethodPost, "/v1/roots", unitRootsBody); rr.Code != http.StatusOK {
		t.Errorf("solve with nil logger: status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, "/v1/roots", `{"coefficients":[1]}`); rr.Code != http.StatusBadRequest {
		t.Errorf("domain error with nil logger: status = %d", rr.Code)
	}
}
