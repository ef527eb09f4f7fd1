package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError describes a single invalid configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every invalid field found during
// validation so operators can fix a config file in one pass.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid configuration: %s", e.Errors[0].Error())
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("invalid configuration (%d errors): %s", len(e.Errors), strings.Join(msgs, "; "))
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

var validLedgerBackends = map[string]bool{
	"memory": true,
	"sqlite": true,
}

// Validate checks the configuration for invalid values, collecting
// every problem rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []FieldError

	if c.Catalog.Path == "" {
		errs = append(errs, FieldError{Field: "catalog.path", Message: "must not be empty"})
	}
	if c.Catalog.DebounceInterval < 0 {
		errs = append(errs, FieldError{Field: "catalog.debounce_interval", Message: "must not be negative"})
	}

	if c.Pricing.AverageUnitPrice < 0 {
		errs = append(errs, FieldError{Field: "pricing.average_unit_price", Message: "must not be negative"})
	}
	for i, entry := range c.Pricing.Entries {
		if entry.Provider == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("pricing.entries[%d].provider", i), Message: "must not be empty"})
		}
		if entry.Model == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("pricing.entries[%d].model", i), Message: "must not be empty"})
		}
		if entry.InputPricePer1K < 0 || entry.OutputPricePer1K < 0 {
			errs = append(errs, FieldError{Field: fmt.Sprintf("pricing.entries[%d]", i), Message: "prices must not be negative"})
		}
	}

	if c.Budget.CeilingCents < 0 {
		errs = append(errs, FieldError{Field: "budget.ceiling_cents", Message: "must not be negative"})
	}
	if c.Budget.ResetSchedule != "" {
		if _, err := cron.ParseStandard(c.Budget.ResetSchedule); err != nil {
			errs = append(errs, FieldError{Field: "budget.reset_schedule", Message: fmt.Sprintf("invalid cron expression: %v", err)})
		}
	}
	if !validLedgerBackends[c.Budget.Ledger.Backend] {
		errs = append(errs, FieldError{Field: "budget.ledger.backend", Message: fmt.Sprintf("must be one of: memory, sqlite (got %q)", c.Budget.Ledger.Backend)})
	}
	if c.Budget.Ledger.Backend == "sqlite" && c.Budget.Ledger.SQLitePath == "" {
		errs = append(errs, FieldError{Field: "budget.ledger.sqlite_path", Message: "required when backend is sqlite"})
	}
	if c.Budget.Ledger.BusyTimeout < 0 {
		errs = append(errs, FieldError{Field: "budget.ledger.busy_timeout", Message: "must not be negative"})
	}

	if !validLogLevels[c.Telemetry.Logging.Level] {
		errs = append(errs, FieldError{Field: "telemetry.logging.level", Message: fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", c.Telemetry.Logging.Level)})
	}
	if !validLogFormats[c.Telemetry.Logging.Format] {
		errs = append(errs, FieldError{Field: "telemetry.logging.format", Message: fmt.Sprintf("must be one of: json, text (got %q)", c.Telemetry.Logging.Format)})
	}
	if c.Telemetry.Metrics.Enabled && c.Telemetry.Metrics.Path == "" {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must not be empty when metrics are enabled"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
