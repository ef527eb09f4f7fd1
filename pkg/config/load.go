package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML configuration file, applies defaults for
// unset fields, applies SATURN_* environment overrides, and validates
// the result. A missing file is an error; callers that want a purely
// default configuration should use DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with every field set to its
// default value and no environment overrides applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}

// applyEnvOverrides overlays SATURN_* environment variables onto the
// configuration. Unparsable values are ignored so a stray variable
// cannot take down startup; validation still catches out-of-range
// results.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SATURN_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("SATURN_CATALOG_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Catalog.Watch = b
		}
	}
	if v := os.Getenv("SATURN_CATALOG_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Catalog.DebounceInterval = d
		}
	}
	if v := os.Getenv("SATURN_BUDGET_CEILING_CENTS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Budget.CeilingCents = n
		}
	}
	if v := os.Getenv("SATURN_BUDGET_RESET_SCHEDULE"); v != "" {
		cfg.Budget.ResetSchedule = v
	}
	if v := os.Getenv("SATURN_LEDGER_BACKEND"); v != "" {
		cfg.Budget.Ledger.Backend = v
	}
	if v := os.Getenv("SATURN_LEDGER_SQLITE_PATH"); v != "" {
		cfg.Budget.Ledger.SQLitePath = v
	}
	if v := os.Getenv("SATURN_LOG_LEVEL"); v != "" {
		cfg.Telemetry.Logging.Level = v
	}
	if v := os.Getenv("SATURN_LOG_FORMAT"); v != "" {
		cfg.Telemetry.Logging.Format = v
	}
	if v := os.Getenv("SATURN_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
