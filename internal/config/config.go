package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Units    UnitsConfig    `yaml:"units"`
	Timer    TimerConfig    `yaml:"timer"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type UnitsConfig struct {
	Weight string `yaml:"weight"` // "lbs" or "kg"
}

type TimerConfig struct {
	DefaultRestSeconds int `yaml:"default_rest_seconds"`
}

// Default returns the configuration used when no config file exists:
// database under the user home, pounds, 90-second rest timer.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(home, ".liftlog", "liftlog.db")},
		Units:    UnitsConfig{Weight: "lbs"},
		Timer:    TimerConfig{DefaultRestSeconds: 90},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: defaults apply, and env
// overrides still take effect. Env vars use the prefix LIFTLOG_:
//
//	LIFTLOG_DB_PATH, LIFTLOG_WEIGHT_UNIT, LIFTLOG_REST_SECONDS
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file: defaults + env.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTLOG_WEIGHT_UNIT"); v != "" {
		cfg.Units.Weight = v
	}
	if v := os.Getenv("LIFTLOG_REST_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Timer.DefaultRestSeconds = secs
		}
	}
}

func (c *Config) validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Units.Weight != "lbs" && c.Units.Weight != "kg" {
		return fmt.Errorf("units.weight must be \"lbs\" or \"kg\", got %q", c.Units.Weight)
	}
	if c.Timer.DefaultRestSeconds <= 0 {
		return fmt.Errorf("timer.default_rest_seconds must be positive")
	}
	return nil
}
