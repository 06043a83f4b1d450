package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// TestLoadValid verifies that a full YAML file overrides every default.
func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/lifts.db
units:
  weight: kg
timer:
  default_rest_seconds: 120
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Database.Path != "/tmp/lifts.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Units.Weight != "kg" {
		t.Errorf("weight unit = %q, want kg", cfg.Units.Weight)
	}
	if cfg.Timer.DefaultRestSeconds != 120 {
		t.Errorf("rest seconds = %d, want 120", cfg.Timer.DefaultRestSeconds)
	}
}

// TestLoadMissingFile verifies that a nonexistent path yields the defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loading missing file: %v", err)
	}
	if cfg.Units.Weight != "lbs" {
		t.Errorf("default weight unit = %q, want lbs", cfg.Units.Weight)
	}
	if cfg.Timer.DefaultRestSeconds != 90 {
		t.Errorf("default rest seconds = %d, want 90", cfg.Timer.DefaultRestSeconds)
	}
	if !strings.Contains(cfg.Database.Path, ".liftlog") {
		t.Errorf("default database path = %q", cfg.Database.Path)
	}
}

// TestLoadPartialFile verifies that fields absent from the file keep their
// defaults.
func TestLoadPartialFile(t *testing.T) {
	path := writeConfig(t, `
units:
  weight: kg
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Units.Weight != "kg" {
		t.Errorf("weight unit = %q, want kg", cfg.Units.Weight)
	}
	if cfg.Timer.DefaultRestSeconds != 90 {
		t.Errorf("rest seconds = %d, want default 90", cfg.Timer.DefaultRestSeconds)
	}
}

// TestEnvOverrides verifies that environment variables win over the file.
func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
units:
  weight: lbs
timer:
  default_rest_seconds: 60
`)
	t.Setenv("LIFTLOG_DB_PATH", "/tmp/env.db")
	t.Setenv("LIFTLOG_WEIGHT_UNIT", "kg")
	t.Setenv("LIFTLOG_REST_SECONDS", "45")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("database path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Units.Weight != "kg" {
		t.Errorf("weight unit = %q, want kg", cfg.Units.Weight)
	}
	if cfg.Timer.DefaultRestSeconds != 45 {
		t.Errorf("rest seconds = %d, want 45", cfg.Timer.DefaultRestSeconds)
	}
}

// TestValidation verifies rejection of bad units and rest durations.
func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown unit", "units:\n  weight: stones\n"},
		{"zero rest", "timer:\n  default_rest_seconds: 0\n"},
		{"negative rest", "timer:\n  default_rest_seconds: -5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestLoadMalformedYAML verifies that unparseable files fail loudly instead
// of silently falling back to defaults.
func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "units: [not, a, map")); err == nil {
		t.Error("expected parse error")
	}
}
