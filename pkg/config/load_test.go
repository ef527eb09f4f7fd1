package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saturn.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeTempConfig(t, `
catalog:
  path: /etc/saturn/catalog.json
  watch: true
  debounce_interval: 250ms
  default_bindings:
    dealership_name: Unknown
pricing:
  average_unit_price: 0.5
  entries:
    - provider: openai
      model: gpt-4o
      input_price_per_1k: 0.25
      output_price_per_1k: 1.0
budget:
  ceiling_cents: 10000
  reset_schedule: "0 0 * * *"
  ledger:
    backend: sqlite
    sqlite_path: /var/lib/saturn/budget.db
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: true
    path: /metrics
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.Path != "/etc/saturn/catalog.json" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Watch {
		t.Error("catalog watch should be true")
	}
	if cfg.Catalog.DebounceInterval != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms", cfg.Catalog.DebounceInterval)
	}
	if cfg.Catalog.DefaultBindings["dealership_name"] != "Unknown" {
		t.Errorf("default bindings = %v", cfg.Catalog.DefaultBindings)
	}
	if cfg.Pricing.AverageUnitPrice != 0.5 {
		t.Errorf("average unit price = %v", cfg.Pricing.AverageUnitPrice)
	}
	if len(cfg.Pricing.Entries) != 1 || cfg.Pricing.Entries[0].Model != "gpt-4o" {
		t.Errorf("pricing entries = %+v", cfg.Pricing.Entries)
	}
	if cfg.Budget.CeilingCents != 10000 {
		t.Errorf("ceiling = %d", cfg.Budget.CeilingCents)
	}
	if cfg.Budget.Ledger.Backend != "sqlite" {
		t.Errorf("ledger backend = %q", cfg.Budget.Ledger.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Telemetry.Logging)
	}
}

func TestLoadConfig_DefaultsFillUnsetFields(t *testing.T) {
	path := writeTempConfig(t, `
catalog:
  path: catalog.json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.DebounceInterval != DefaultDebounceInterval {
		t.Errorf("debounce = %v, want default %v", cfg.Catalog.DebounceInterval, DefaultDebounceInterval)
	}
	if cfg.Pricing.AverageUnitPrice != DefaultAverageUnitPrice {
		t.Errorf("average unit price = %v, want default %v", cfg.Pricing.AverageUnitPrice, DefaultAverageUnitPrice)
	}
	if cfg.Budget.CeilingCents != DefaultBudgetCeilingCents {
		t.Errorf("ceiling = %d, want default %d", cfg.Budget.CeilingCents, DefaultBudgetCeilingCents)
	}
	if cfg.Budget.Ledger.Backend != DefaultLedgerBackend {
		t.Errorf("backend = %q, want default %q", cfg.Budget.Ledger.Backend, DefaultLedgerBackend)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("level = %q, want default %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "catalog: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeTempConfig(t, `
catalog:
  path: from-file.json
budget:
  ceiling_cents: 100
`)

	t.Setenv("SATURN_CATALOG_PATH", "from-env.json")
	t.Setenv("SATURN_CATALOG_WATCH", "true")
	t.Setenv("SATURN_BUDGET_CEILING_CENTS", "9999")
	t.Setenv("SATURN_LOG_LEVEL", "error")
	t.Setenv("SATURN_METRICS_ENABLED", "false")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Catalog.Path != "from-env.json" {
		t.Errorf("catalog path = %q, want env override", cfg.Catalog.Path)
	}
	if !cfg.Catalog.Watch {
		t.Error("watch should be overridden to true")
	}
	if cfg.Budget.CeilingCents != 9999 {
		t.Errorf("ceiling = %d, want 9999", cfg.Budget.CeilingCents)
	}
	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("level = %q, want error", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be overridden to disabled")
	}
}

func TestLoadConfig_EnvOverrideUnparsableIgnored(t *testing.T) {
	path := writeTempConfig(t, `
budget:
  ceiling_cents: 100
`)

	t.Setenv("SATURN_BUDGET_CEILING_CENTS", "not-a-number")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Budget.CeilingCents != 100 {
		t.Errorf("ceiling = %d, want file value 100", cfg.Budget.CeilingCents)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadConfig_InvalidRejected(t *testing.T) {
	path := writeTempConfig(t, `
budget:
  ledger:
    backend: cassandra
telemetry:
  logging:
    level: verbose
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
}
