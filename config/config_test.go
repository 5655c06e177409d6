package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teolife.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, "seed: 1234\ndays_per_visit: 3\ndays_per_year: 30\nauto_advance: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("Seed = %d, want 1234", cfg.Seed)
	}
	if cfg.DaysPerVisit != 3 {
		t.Errorf("DaysPerVisit = %d, want 3", cfg.DaysPerVisit)
	}
	if cfg.DaysPerYear != 30 {
		t.Errorf("DaysPerYear = %d, want 30", cfg.DaysPerYear)
	}
	if !cfg.AutoAdvance {
		t.Error("AutoAdvance = false, want true")
	}
}

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no_such_file.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing file", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero Config", cfg)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, "seed: 7\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.DaysPerVisit != 0 {
		t.Errorf("DaysPerVisit = %d, want 0 (engine default)", cfg.DaysPerVisit)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "seed: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for malformed YAML")
	}
}

func TestLoadNegativePacing(t *testing.T) {
	path := writeConfig(t, "days_per_visit: -1\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for negative days_per_visit")
	}
}
