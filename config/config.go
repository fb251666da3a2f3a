// Package config loads the analyzer configuration from YAML, overlaying a
// complete set of defaults so a missing file or a partial file both work.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete analyzer configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// AnalysisConfig holds the engine policy knobs.
type AnalysisConfig struct {
	GapThresholdMinutes int     `yaml:"gap_threshold_minutes"`
	SPThresholdHz       float64 `yaml:"sp_threshold_hz"`
}

// ReportConfig controls where the rendered outputs land. Templates expand
// {STEM} to the first input file's base name without extension.
type ReportConfig struct {
	TextTemplate string `yaml:"text_template"`
	JSONTemplate string `yaml:"json_template"`
	WriteJSON    bool   `yaml:"write_json"`
}

// ArchiveConfig controls the SQLite QSO archive.
type ArchiveConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DBPath        string `yaml:"db_path"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			GapThresholdMinutes: 15,
			SPThresholdHz:       200,
		},
		Report: ReportConfig{
			TextTemplate: "{STEM}_analysis.txt",
			JSONTemplate: "{STEM}_analysis.json",
			WriteJSON:    false,
		},
		Archive: ArchiveConfig{
			Enabled:       false,
			DBPath:        "data/contestlog.db",
			BusyTimeoutMS: 5000,
		},
	}
}

// Load reads a YAML config over the defaults. A missing file is not an
// error; it yields the defaults unchanged.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", filename, err)
	}
	if cfg.Analysis.GapThresholdMinutes <= 0 {
		cfg.Analysis.GapThresholdMinutes = 15
	}
	if cfg.Analysis.SPThresholdHz <= 0 {
		cfg.Analysis.SPThresholdHz = 200
	}
	return cfg, nil
}

// SPThresholdMHz converts the configured Hz threshold to MHz for the engine.
func (c AnalysisConfig) SPThresholdMHz() float64 {
	return c.SPThresholdHz / 1e6
}

// ExpandTemplate substitutes {STEM} with the base name of the given input
// path, without its extension.
func ExpandTemplate(tmpl, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(tmpl, "{STEM}", stem)
}
