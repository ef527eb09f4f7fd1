package config

import "time"

// Default values for configuration fields.
const (
	// Catalog defaults
	DefaultCatalogPath      = "./catalog.json"
	DefaultCatalogWatch     = false
	DefaultDebounceInterval = 100 * time.Millisecond

	// Pricing defaults
	DefaultAverageUnitPrice = 0.2 // cents per estimated unit

	// Budget defaults
	DefaultBudgetCeilingCents = int64(50000) // 500.00
	DefaultLedgerBackend      = "memory"
	DefaultLedgerSQLitePath   = "data/budget.db"
	DefaultLedgerBusyTimeout  = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "json"
	DefaultMetricsEnabled    = true
	DefaultMetricsListenAddr = ":9090"
	DefaultMetricsPath       = "/metrics"
)

// ApplyDefaults fills unset configuration fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Catalog.DebounceInterval == 0 {
		cfg.Catalog.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Catalog.DefaultBindings == nil {
		cfg.Catalog.DefaultBindings = make(map[string]string)
	}

	if cfg.Pricing.AverageUnitPrice == 0 {
		cfg.Pricing.AverageUnitPrice = DefaultAverageUnitPrice
	}

	if cfg.Budget.CeilingCents == 0 {
		cfg.Budget.CeilingCents = DefaultBudgetCeilingCents
	}
	if cfg.Budget.Ledger.Backend == "" {
		cfg.Budget.Ledger.Backend = DefaultLedgerBackend
	}
	if cfg.Budget.Ledger.SQLitePath == "" {
		cfg.Budget.Ledger.SQLitePath = DefaultLedgerSQLitePath
	}
	if cfg.Budget.Ledger.BusyTimeout == 0 {
		cfg.Budget.Ledger.BusyTimeout = DefaultLedgerBusyTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddr == "" {
		cfg.Telemetry.Metrics.ListenAddr = DefaultMetricsListenAddr
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
