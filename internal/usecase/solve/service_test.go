package solve

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/curve"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
	"github.com/achernar1030/polyroot/internal/solver"
)

// --- Mocks ---

type mockSolver struct {
	raw   []complex128
	err   error
	calls int
}

func (m *mockSolver) Solve(_ context.Context, _ polynomial.Polynomial) (roots.Set, error) {
	m.calls++
	if m.err != nil {
		return roots.Set{}, m.err
	}
	return roots.Classify(m.raw, roots.DefaultTolerance), nil
}

func unitRootCoefficients() []float64 {
	return []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1}
}

// --- Tests ---

func TestSolve_RealRootsProduceCurve(t *testing.T) {
	m := &mockSolver{raw: []complex128{complex(2, 0), complex(-1, 0), complex(0, 1), complex(0, -1)}}
	svc := New(m, zap.NewNop())

	res, err := svc.Solve(context.Background(), unitRootCoefficients())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NoRealRoots {
		t.Error("NoRealRoots = true, want false")
	}
	if res.Curve == nil {
		t.Fatal("Curve = nil, want sampled curve")
	}
	if res.Curve.MinX != -3 || res.Curve.MaxX != 4 {
		t.Errorf("curve range = [%v, %v], want [-3, 4]", res.Curve.MinX, res.Curve.MaxX)
	}
	if len(res.Curve.Samples) != curve.SampleCount {
		t.Errorf("samples = %d, want %d", len(res.Curve.Samples), curve.SampleCount)
	}
	if len(res.Curve.Markers) != 2 {
		t.Errorf("markers = %v, want 2", res.Curve.Markers)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}
}

func TestSolve_NoRealRoots(t *testing.T) {
	m := &mockSolver{raw: []complex128{complex(0, 1), complex(0, -1)}}
	res, err := New(m, zap.NewNop()).Solve(context.Background(), unitRootCoefficients())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.NoRealRoots {
		t.Error("NoRealRoots = false, want true")
	}
	if res.Curve != nil {
		t.Error("Curve must be nil without real roots")
	}
	if len(res.Roots.Complex()) != 2 {
		t.Errorf("complex roots = %v", res.Roots.Complex())
	}
}

func TestSolve_InvalidCount(t *testing.T) {
	for _, n := range []int{11, 13} {
		m := &mockSolver{}
		_, err := New(m, zap.NewNop()).Solve(context.Background(), make([]float64, n))
		if !errors.Is(err, domain.ErrInvalidCoefficientCount) {
			t.Fatalf("len %d: error = %v, want ErrInvalidCoefficientCount", n, err)
		}
		var cce *domain.CoefficientCountError
		if !errors.As(err, &cce) || cce.Got != n {
			t.Errorf("len %d: count not carried: %v", n, err)
		}
		if m.calls != 0 {
			t.Errorf("solver called %d times on invalid input", m.calls)
		}
	}
}

func TestSolve_InvalidType(t *testing.T) {
	_, err := New(&mockSolver{}, zap.NewNop()).Solve(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidInputType) {
		t.Fatalf("error = %v, want ErrInvalidInputType", err)
	}
}

func TestSolve_ComputationError(t *testing.T) {
	m := &mockSolver{err: domain.NewRootComputation(errors.New("boom"))}
	res, err := New(m, zap.NewNop()).Solve(context.Background(), unitRootCoefficients())
	if !errors.Is(err, domain.ErrRootComputation) {
		t.Fatalf("error = %v, want ErrRootComputation", err)
	}
	if res.Roots.Len() != 0 || res.Curve != nil {
		t.Error("partial result returned on error")
	}
}

func TestSolve_DegenerateWarningIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := New(solver.New(0), zap.New(core))

	res, err := svc.Solve(context.Background(), []float64{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != domain.WarnDegenerateLeadingCoefficient {
		t.Fatalf("warnings = %v, want degenerate leading coefficient", res.Warnings)
	}
	if res.Roots.Len() != 10 {
		t.Errorf("roots = %d, want 10", res.Roots.Len())
	}
	if logs.FilterField(zap.String("code", string(domain.WarnDegenerateLeadingCoefficient))).Len() != 1 {
		t.Errorf("expected one warning log line, got %v", logs.All())
	}
}

func TestSolve_ContextLoggerWins(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := contextWithLogger(zap.New(core))

	_, err := New(solver.New(0), zap.NewNop()).Solve(ctx, []float64{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if logs.Len() == 0 {
		t.Error("expected warning on the request-scoped logger")
	}
}

func TestSolve_EndToEndUnitRoots(t *testing.T) {
	res, err := New(solver.New(0), nil).Solve(context.Background(), unitRootCoefficients())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Roots.Len() != 11 || len(res.Roots.Real()) != 1 {
		t.Fatalf("roots = %d (real %d), want 11 (real 1)", res.Roots.Len(), len(res.Roots.Real()))
	}
	if res.Curve == nil {
		t.Fatal("expected curve")
	}
	if res.Curve.MinX > -0.99 || res.Curve.MaxX < 2.99 {
		t.Errorf("curve range = [%v, %v], want about [-1, 3]", res.Curve.MinX, res.Curve.MaxX)
	}
}

func TestWarnings(t *testing.T) {
	p, _ := polynomial.New(unitRootCoefficients())
	if w := Warnings(p); w != nil {
		t.Errorf("Warnings = %v, want nil", w)
	}
	zero, _ := polynomial.New(make([]float64, polynomial.Size))
	w := Warnings(zero)
	if len(w) != 1 {
		t.Fatalf("Warnings(zero) = %v", w)
	}
}

func TestDefaults(t *testing.T) {
	terms := New(&mockSolver{}, nil).Defaults()
	if len(terms) != polynomial.Size || terms[0].Value != 1 {
		t.Errorf("Defaults() = %+v", terms)
	}
}
