// Package config provides configuration loading and management for
// shollanalysis. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Sampling parameters
	Sampling struct {
		// StartRadius is the first sampled radius in physical units
		StartRadius float64 `yaml:"startRadius"`

		// EndRadius is the last sampled radius in physical units
		EndRadius float64 `yaml:"endRadius"`

		// StepRadius is the spacing between consecutive radii
		StepRadius float64 `yaml:"stepRadius"`

		// SamplesPerRadius is the number of sub-samples per radius (2D only, 1-10)
		SamplesPerRadius int `yaml:"samplesPerRadius"`

		// Combine selects how sub-samples are folded: "mean" or "median"
		Combine string `yaml:"combine"`

		// SpikeSuppression enables the staircase-artifact correction (2D only)
		SpikeSuppression bool `yaml:"spikeSuppression"`

		// Restrict limits sampling to a hemicircle/hemisphere:
		// "above", "below", "left", "right" or empty for the full circle
		Restrict string `yaml:"restrict"`
	} `yaml:"sampling"`

	// Threshold parameters defining the foreground band
	Threshold struct {
		// Auto derives the band from the image histogram (Otsu); when set,
		// Lower and Upper are ignored
		Auto bool `yaml:"auto"`

		// Lower is the inclusive lower bound of the foreground band
		Lower float64 `yaml:"lower"`

		// Upper is the inclusive upper bound of the foreground band
		Upper float64 `yaml:"upper"`
	} `yaml:"threshold"`

	// Fit parameters
	Fit struct {
		// Enabled turns on curve fitting and descriptor derivation
		Enabled bool `yaml:"enabled"`

		// Method is one of "linear", "normalized", "semilog", "loglog"
		Method string `yaml:"method"`

		// PolynomialDegree is the degree of the Linear-method fit (4-8)
		PolynomialDegree int `yaml:"polynomialDegree"`
	} `yaml:"fit"`

	// Output parameters
	Output struct {
		// Directory is where CSV, plot and mask files are written
		Directory string `yaml:"directory"`

		// SaveCSV writes the two-column profile table
		SaveCSV bool `yaml:"saveCSV"`

		// SavePlot renders the profile plot to PNG
		SavePlot bool `yaml:"savePlot"`

		// SaveMask renders the intersections heatmap mask to PNG
		SaveMask bool `yaml:"saveMask"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Sampling.StartRadius = 10.0
	cfg.Sampling.EndRadius = 100.0
	cfg.Sampling.StepRadius = 1.0
	cfg.Sampling.SamplesPerRadius = 1
	cfg.Sampling.Combine = "mean"
	cfg.Sampling.SpikeSuppression = true

	cfg.Threshold.Auto = true
	cfg.Threshold.Lower = 255
	cfg.Threshold.Upper = 255

	cfg.Fit.Enabled = true
	cfg.Fit.Method = "linear"
	cfg.Fit.PolynomialDegree = 5

	cfg.Output.Directory = "sholl_results"
	cfg.Output.SaveCSV = true
	cfg.Output.SavePlot = true
	cfg.Output.SaveMask = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
