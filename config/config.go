// Package config loads the tunable thresholds the classifier, reviewer,
// and adjudicator client run with from a project-level .filmlane.yaml file,
// falling back to the shipped defaults when one is absent. It follows the
// teacher's core.LoadScanConfig shape: read-if-exists, defaults otherwise,
// wrapped errors only for genuine I/O or parse failures.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables for one classification session.
type Config struct {
	Reviewer   ReviewerSettings   `yaml:"reviewer"`
	Resolver   ResolverSettings   `yaml:"resolver"`
	Adjudicator AdjudicatorSettings `yaml:"adjudicator"`
}

// ReviewerSettings mirrors the escalation-gate and trimming constants the
// post-classification reviewer applies.
type ReviewerSettings struct {
	SuspicionThreshold     int     `yaml:"suspicion_threshold"`
	MaxSuspicionRatio      float64 `yaml:"max_suspicion_ratio"`
	MinSignalsForSuspicion int     `yaml:"min_signals_for_suspicion"`
	HighSeveritySingleSignal int   `yaml:"high_severity_single_signal"`
	ContextRadius          int     `yaml:"context_radius"`
}

// ResolverSettings mirrors the narrative decision resolver's tuning knobs.
type ResolverSettings struct {
	LowConfidenceThreshold int `yaml:"low_confidence_threshold"` // C_low
	WindowRadius           int `yaml:"window_radius"`            // W
}

// AdjudicatorSettings configures the external review HTTP client.
type AdjudicatorSettings struct {
	APIKeyEnv         string        `yaml:"api_key_env"`
	Model             string        `yaml:"model"`
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	Enabled           bool          `yaml:"enabled"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// Default returns the shipped baseline configuration. Every numeric
// constant here is surfaced for tuning but must never silently drift: a
// project's .filmlane.yaml only overrides what it sets.
func Default() Config {
	return Config{
		Reviewer: ReviewerSettings{
			SuspicionThreshold:       74,
			MaxSuspicionRatio:        0.08,
			MinSignalsForSuspicion:   2,
			HighSeveritySingleSignal: 90,
			ContextRadius:            5,
		},
		Resolver: ResolverSettings{
			LowConfidenceThreshold: 60,
			WindowRadius:           10,
		},
		Adjudicator: AdjudicatorSettings{
			APIKeyEnv:         "FILMLANE_ADJUDICATOR_API_KEY",
			Model:             "gpt-4o-mini",
			BaseURL:           "",
			Timeout:           60 * time.Second,
			Enabled:           false,
			RequestsPerMinute: 20,
		},
	}
}

// configFileName is the project-level override file, read from the working
// directory the classifier is invoked in.
const configFileName = ".filmlane.yaml"

// Load reads configFileName under root, merging it over Default(). A
// missing file is not an error: it yields the untouched default.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
