package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected timeouts: %+v", cfg.HTTP)
	}
	if cfg.HTTP.MaxBodyBytes != 65536 {
		t.Errorf("expected MaxBodyBytes=65536, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.Solver.RealTolerance != 1e-9 {
		t.Errorf("expected RealTolerance=1e-9, got %g", cfg.Solver.RealTolerance)
	}
	if cfg.Plot.Width != 1000 || cfg.Plot.Height != 600 {
		t.Errorf("expected plot 1000x600, got %dx%d", cfg.Plot.Width, cfg.Plot.Height)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 9000, ReadTimeoutSec: 30},
		Solver: SolverConfig{RealTolerance: 1e-6},
		Plot:   PlotConfig{Width: 800, Height: 400},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("HTTP overridden: %+v", cfg.HTTP)
	}
	if cfg.Solver.RealTolerance != 1e-6 {
		t.Errorf("RealTolerance overridden: %g", cfg.Solver.RealTolerance)
	}
	if cfg.Plot.Width != 800 || cfg.Plot.Height != 400 {
		t.Errorf("Plot overridden: %+v", cfg.Plot)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"negative port", func(c *Config) { c.HTTP.Port = -1 }, "http.port"},
		{"tolerance too large", func(c *Config) { c.Solver.RealTolerance = 1 }, "solver.real_tolerance"},
		{"plot too narrow", func(c *Config) { c.Plot.Width = 50 }, "plot.width"},
		{"plot too tall", func(c *Config) { c.Plot.Height = 5000 }, "plot.height"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("POLYROOT_TEST_PORT", "9191")
	data := []byte(`
http:
  port: ${POLYROOT_TEST_PORT}
solver:
  real_tolerance: ${POLYROOT_TEST_MISSING:-1e-7}
auth:
  api_keys: ["k1"]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 9191 {
		t.Errorf("Port = %d, want 9191", cfg.HTTP.Port)
	}
	if cfg.Solver.RealTolerance != 1e-7 {
		t.Errorf("RealTolerance = %g, want 1e-7", cfg.Solver.RealTolerance)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "k1" {
		t.Errorf("APIKeys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Plot.Width != 1000 {
		t.Errorf("defaults not applied: %+v", cfg.Plot)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Error("expected YAML parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 99999\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("plot:\n  width: 640\n  height: 480\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnvVar, path)

	cfg, err := Load("ignored")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Plot.Width != 640 || cfg.Plot.Height != 480 {
		t.Errorf("plot = %+v, want 640x480", cfg.Plot)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("defaults not applied: port %d", cfg.HTTP.Port)
	}
}
