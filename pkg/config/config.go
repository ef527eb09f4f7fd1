package config

import (
	"time"

	"dealerscope/saturn/pkg/pricing"
)

// Config is the root service configuration.
type Config struct {
	// Catalog configures template catalog loading.
	Catalog CatalogConfig `yaml:"catalog"`

	// Pricing configures the price table and sizing heuristic.
	Pricing PricingConfig `yaml:"pricing"`

	// Budget configures spend-ceiling enforcement.
	Budget BudgetConfig `yaml:"budget"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CatalogConfig configures template catalog loading and watching.
type CatalogConfig struct {
	// Path is the catalog JSON file path.
	Path string `yaml:"path"`

	// Watch enables automatic reload when the catalog file changes.
	Watch bool `yaml:"watch"`

	// DebounceInterval delays reload after a detected change.
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// DefaultBindings is the built-in catalog-wide default binding set.
	DefaultBindings map[string]string `yaml:"default_bindings"`
}

// PricingConfig configures the price table and the pre-flight sizing
// heuristic.
type PricingConfig struct {
	// Entries overrides the built-in price table. Empty means use the
	// built-in table. Order is significant: it fixes selection
	// tie-breaking.
	Entries []pricing.Entry `yaml:"entries"`

	// AverageUnitPrice is the fixed average price per estimated unit, in
	// minor currency units, used by hydration sizing estimates.
	AverageUnitPrice float64 `yaml:"average_unit_price"`
}

// BudgetConfig configures spend-ceiling enforcement.
type BudgetConfig struct {
	// CeilingCents is the spend ceiling in minor currency units.
	CeilingCents int64 `yaml:"ceiling_cents"`

	// ResetSchedule is a cron expression for scheduled budget resets.
	// Empty disables scheduled resets.
	ResetSchedule string `yaml:"reset_schedule"`

	// Ledger configures budget record persistence.
	Ledger LedgerConfig `yaml:"ledger"`
}

// LedgerConfig configures the budget ledger backend.
type LedgerConfig struct {
	// Backend selects the ledger implementation: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// BusyTimeout is how long sqlite waits for locks before failing.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures Prometheus metrics exposure.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// ListenAddr is the address the standalone metrics listener binds.
	ListenAddr string `yaml:"listen_addr"`

	// Path is the HTTP path the host should serve metrics on.
	Path string `yaml:"path"`
}
