package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

func ok() Checker { return CheckerFunc(func(context.Context) error { return nil }) }

func failing(msg string) Checker {
	return CheckerFunc(func(context.Context) error { return errors.New(msg) })
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(map[string]Checker{"solver": ok(), "renderer": ok()})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["solver"] != CheckOK || r.Checks["renderer"] != CheckOK {
		t.Errorf("unexpected checks: %v", r.Checks)
	}
}

func TestCheck_OneFails(t *testing.T) {
	svc := New(map[string]Checker{"solver": ok(), "renderer": failing("no font")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["renderer"] != CheckError {
		t.Errorf("expected renderer %q, got %q", CheckError, r.Checks["renderer"])
	}
	if r.Checks["solver"] != CheckOK {
		t.Errorf("expected solver %q, got %q", CheckOK, r.Checks["solver"])
	}
}

func TestCheck_AllFail(t *testing.T) {
	svc := New(map[string]Checker{"solver": failing("nan"), "renderer": failing("no font")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_NilCheckerSkipped(t *testing.T) {
	svc := New(map[string]Checker{"solver": ok(), "renderer": nil})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, found := r.Checks["renderer"]; found {
		t.Error("nil checker must be absent from the report")
	}
	if names := svc.Names(); len(names) != 1 || names[0] != "solver" {
		t.Errorf("Names() = %v", names)
	}
}

func TestCheck_Empty(t *testing.T) {
	r := New(nil).Check(context.Background())
	if r.Status != Healthy || len(r.Checks) != 0 {
		t.Errorf("empty service report = %+v", r)
	}
}
