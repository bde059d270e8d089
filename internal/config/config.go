// Package config provides configuration loading for the keyderive CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Harness HarnessConfig `mapstructure:"harness"`
	Log     LogConfig     `mapstructure:"log"`
}

// HarnessConfig configures the check command.
type HarnessConfig struct {
	Seed       string            `mapstructure:"seed"`
	Count      int               `mapstructure:"count"`
	Timeout    time.Duration     `mapstructure:"timeout"`
	Workers    int               `mapstructure:"workers"`
	Candidate  string            `mapstructure:"candidate"` // name of the candidate to run
	Candidates []CandidateConfig `mapstructure:"candidates"`
	Vectors    string            `mapstructure:"vectors"` // optional JSON/CSV vector file
	Format     string            `mapstructure:"format"`  // vector file format: json, csv
}

// CandidateConfig describes an external candidate program.
type CandidateConfig struct {
	Name    string   `mapstructure:"name"`
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Dir     string   `mapstructure:"dir"`
	Env     []string `mapstructure:"env"`

	// Build runs once before the cases, e.g. ["g++", "-o", "main", "main.cpp"].
	Build        []string      `mapstructure:"build"`
	BuildTimeout time.Duration `mapstructure:"build_timeout"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// New returns a viper instance with defaults, environment overrides and the
// optional config file search paths set up.  Callers may bind flags to it
// before calling Load.
func New(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("keyderive")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("KEYDERIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// Load reads the config file (if any) and unmarshals the merged settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and candidate definitions.
func (c *Config) Validate() error {
	if c.Harness.Count < 0 {
		return fmt.Errorf("harness.count must not be negative, got %d", c.Harness.Count)
	}
	if c.Harness.Timeout < 0 {
		return fmt.Errorf("harness.timeout must not be negative, got %s", c.Harness.Timeout)
	}
	if c.Harness.Workers < 0 {
		return fmt.Errorf("harness.workers must not be negative, got %d", c.Harness.Workers)
	}

	seen := make(map[string]bool, len(c.Harness.Candidates))
	for i, cand := range c.Harness.Candidates {
		if cand.Name == "" {
			return fmt.Errorf("harness.candidates[%d]: name is required", i)
		}
		if cand.Command == "" {
			return fmt.Errorf("harness.candidates[%d] (%s): command is required", i, cand.Name)
		}
		if cand.BuildTimeout < 0 {
			return fmt.Errorf("harness.candidates[%d] (%s): build_timeout must not be negative", i, cand.Name)
		}
		if cand.BuildTimeout > 0 && len(cand.Build) == 0 {
			return fmt.Errorf("harness.candidates[%d] (%s): build_timeout set without build", i, cand.Name)
		}
		if seen[cand.Name] {
			return fmt.Errorf("harness.candidates[%d]: duplicate name %q", i, cand.Name)
		}
		seen[cand.Name] = true
	}
	return nil
}

// setDefaults configures default values for all settings.
func setDefaults(v *viper.Viper) {
	// Harness defaults
	v.SetDefault("harness.seed", "default_seed_for_testing")
	v.SetDefault("harness.count", 3)
	v.SetDefault("harness.timeout", "10s")
	v.SetDefault("harness.workers", 0)
	v.SetDefault("harness.candidate", "reference")
	v.SetDefault("harness.vectors", "")
	v.SetDefault("harness.format", "json")

	// Log defaults
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
}
