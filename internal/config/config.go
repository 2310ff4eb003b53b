// Package config loads sickday settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/sickday/internal/analytics"
)

// Config holds user settings from ~/.sickday/config.yaml.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`

	// Color enables colored text output.
	Color bool `yaml:"color"`

	Analysis AnalysisConfig `yaml:"analysis"`
}

// AnalysisConfig sets analysis window lengths in days.
type AnalysisConfig struct {
	PreWindowDays int `yaml:"pre_window_days"`
	BaselineDays  int `yaml:"baseline_days"`
	SummaryDays   int `yaml:"summary_days"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Color: true,
		Analysis: AnalysisConfig{
			PreWindowDays: analytics.DefaultPreWindowDays,
			BaselineDays:  analytics.DefaultBaselineDays,
			SummaryDays:   analytics.DefaultSummaryDays,
		},
	}
}

// Dir returns the sickday home directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sickday")
}

// Path returns $SICKDAY_CONFIG or ~/.sickday/config.yaml.
func Path() string {
	if env := os.Getenv("SICKDAY_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.yaml")
}

// EnvPath returns ~/.sickday/.env.
func EnvPath() string {
	return filepath.Join(Dir(), ".env")
}

// LoadEnv sets SICKDAY_* variables from a dotenv file. Variables already in
// the environment win. A missing file is not an error.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults; an unreadable or malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the analysis windows are usable.
func (c Config) Validate() error {
	a := c.Analysis
	if a.PreWindowDays < 1 {
		return fmt.Errorf("analysis.pre_window_days must be at least 1, got %d", a.PreWindowDays)
	}
	if a.BaselineDays < 1 {
		return fmt.Errorf("analysis.baseline_days must be at least 1, got %d", a.BaselineDays)
	}
	if a.SummaryDays < 1 {
		return fmt.Errorf("analysis.summary_days must be at least 1, got %d", a.SummaryDays)
	}
	return nil
}

// Windows converts the analysis settings for the trigger analyzer.
func (c Config) Windows() analytics.Windows {
	return analytics.Windows{
		PreWindowDays: c.Analysis.PreWindowDays,
		BaselineDays:  c.Analysis.BaselineDays,
	}
}

// ResolveDBPath picks the database path: flag, then $SICKDAY_DB, then the
// config file, then ~/.sickday/sickday.db.
func (c Config) ResolveDBPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("SICKDAY_DB"); env != "" {
		return env
	}
	if c.DBPath != "" {
		return expandHome(c.DBPath)
	}
	return filepath.Join(Dir(), "sickday.db")
}

func expandHome(p string) string {
	if len(p) > 1 && p[:2] == "~/" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[2:])
	}
	return p
}
