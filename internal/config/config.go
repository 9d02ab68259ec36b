// Package config loads user settings for the studyplan CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyplan/internal/slots"
)

// Config holds the user's settings. Plan requests override the planning
// defaults field by field.
type Config struct {
	DB                 string    `yaml:"db"`
	Timezone           string    `yaml:"timezone"`
	BlockDurationHours float64   `yaml:"block_duration_hours"`
	WeekdayEarliest    string    `yaml:"weekday_earliest"`
	WeekdayLatest      string    `yaml:"weekday_latest"`
	WeekendEarliest    string    `yaml:"weekend_earliest"`
	WeekendLatest      string    `yaml:"weekend_latest"`
	AllowGapFallback   bool      `yaml:"allow_gap_fallback"`
	LLM                LLMConfig `yaml:"llm"`
	LogDir             string    `yaml:"log_dir"`
	Debug              bool      `yaml:"debug"`
}

// LLMConfig selects the provider used for study notes.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Path returns $STUDYPLAN_CONFIG, else
// $XDG_CONFIG_HOME/studyplan/config.yaml (~/.config when unset).
func Path() (string, error) {
	if p := os.Getenv("STUDYPLAN_CONFIG"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "studyplan", "config.yaml"), nil
}

// Load reads the YAML file at path. A missing file yields defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.BlockDurationHours == 0 {
		cfg.BlockDurationHours = slots.DefaultBlockHours
	}
	if cfg.WeekdayEarliest == "" {
		cfg.WeekdayEarliest = slots.DefaultWeekdayEarliest
	}
	if cfg.WeekdayLatest == "" {
		cfg.WeekdayLatest = slots.DefaultWeekdayLatest
	}
	if cfg.WeekendEarliest == "" {
		cfg.WeekendEarliest = slots.DefaultWeekendEarliest
	}
	if cfg.WeekendLatest == "" {
		cfg.WeekendLatest = slots.DefaultWeekendLatest
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if db := os.Getenv("STUDYPLAN_DB"); db != "" {
		cfg.DB = db
	}
	if tz := os.Getenv("STUDYPLAN_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
}

func validate(cfg *Config) error {
	if cfg.BlockDurationHours < 0 {
		return fmt.Errorf("block_duration_hours must be positive, got %v", cfg.BlockDurationHours)
	}
	for name, v := range map[string]string{
		"weekday_earliest": cfg.WeekdayEarliest,
		"weekday_latest":   cfg.WeekdayLatest,
		"weekend_earliest": cfg.WeekendEarliest,
		"weekend_latest":   cfg.WeekendLatest,
	} {
		if _, err := slots.ParseClock(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Preferences fills the empty fields of p from the configured windows.
func (c *Config) Preferences(p slots.Preferences) slots.Preferences {
	if p.WeekdayEarliest == "" {
		p.WeekdayEarliest = c.WeekdayEarliest
	}
	if p.WeekdayLatest == "" {
		p.WeekdayLatest = c.WeekdayLatest
	}
	if p.WeekendEarliest == "" {
		p.WeekendEarliest = c.WeekendEarliest
	}
	if p.WeekendLatest == "" {
		p.WeekendLatest = c.WeekendLatest
	}
	return p
}
