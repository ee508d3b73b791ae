package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the defaults a fresh run starts from
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sampling.StartRadius != 10.0 {
		t.Errorf("Expected default start radius 10, got %g", cfg.Sampling.StartRadius)
	}
	if cfg.Sampling.Combine != "mean" {
		t.Errorf("Expected default combine mode mean, got %q", cfg.Sampling.Combine)
	}
	if !cfg.Sampling.SpikeSuppression {
		t.Error("Expected spike suppression on by default")
	}
	if !cfg.Threshold.Auto {
		t.Error("Expected automatic thresholding by default")
	}
	if cfg.Fit.Method != "linear" {
		t.Errorf("Expected default fit method linear, got %q", cfg.Fit.Method)
	}
	if cfg.Fit.PolynomialDegree != 5 {
		t.Errorf("Expected default polynomial degree 5, got %d", cfg.Fit.PolynomialDegree)
	}
	if !cfg.Output.SaveCSV {
		t.Error("Expected CSV output on by default")
	}
}

// TestLoadConfigMissing verifies that a missing file falls back to defaults
func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Sampling.EndRadius != DefaultConfig().Sampling.EndRadius {
		t.Error("Expected default configuration for a missing file")
	}
}

// TestSaveAndLoadConfig verifies a round trip through the YAML file
func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "sholl.yaml")

	cfg := DefaultConfig()
	cfg.Sampling.StartRadius = 3.5
	cfg.Sampling.Restrict = "above"
	cfg.Threshold.Auto = false
	cfg.Threshold.Lower = 42
	cfg.Fit.Method = "semilog"
	cfg.Output.SaveMask = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Sampling.StartRadius != 3.5 {
		t.Errorf("Expected start radius 3.5, got %g", loaded.Sampling.StartRadius)
	}
	if loaded.Sampling.Restrict != "above" {
		t.Errorf("Expected restrict above, got %q", loaded.Sampling.Restrict)
	}
	if loaded.Threshold.Auto || loaded.Threshold.Lower != 42 {
		t.Errorf("Expected manual band with lower 42, got auto=%v lower=%g",
			loaded.Threshold.Auto, loaded.Threshold.Lower)
	}
	if loaded.Fit.Method != "semilog" {
		t.Errorf("Expected fit method semilog, got %q", loaded.Fit.Method)
	}
	if !loaded.Output.SaveMask {
		t.Error("Expected mask output enabled")
	}
}

// TestLoadConfigPartial verifies that unspecified keys keep their defaults
func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "sampling:\n  startRadius: 7\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Sampling.StartRadius != 7 {
		t.Errorf("Expected overridden start radius 7, got %g", cfg.Sampling.StartRadius)
	}
	if cfg.Sampling.EndRadius != 100 {
		t.Errorf("Expected default end radius 100, got %g", cfg.Sampling.EndRadius)
	}
	if cfg.Fit.Method != "linear" {
		t.Errorf("Expected default fit method, got %q", cfg.Fit.Method)
	}
}

// TestCreateDefaultConfigFile verifies the bootstrap helper
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected config file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty config file")
	}
}
