// Package config defines the service configuration for the prompt
// engine and its loading pipeline.
//
// # Loading Sequence
//
// Configuration is loaded from a YAML file, then:
//
//  1. defaults are applied to unset fields,
//  2. SATURN_* environment variables override file values,
//  3. the result is validated.
//
// Validation collects every failing field into one ValidationError
// rather than stopping at the first problem.
//
// # Sections
//
// Catalog (file path, watching, built-in default bindings), Pricing
// (table overrides and the sizing heuristic's average unit price),
// Budget (ceiling, reset schedule, ledger backend), and Telemetry
// (logging and metrics).
package config
