// Package catalog loads and validates versioned collections of
// parameterized prompt templates.
//
// # Loading
//
// A catalog is parsed from a JSON payload carrying a version, descriptive
// metadata, and a prompts array. Structural problems (unparsable JSON,
// missing version, a template without an id or body, duplicate ids) are
// fatal: Load returns an error and no catalog is produced.
//
// # Cross-Validation
//
// After structural parsing, a cross-validation pass records non-fatal
// findings per template:
//
//   - a body placeholder with no matching declared variable
//   - a declared variable never referenced in the body
//   - a required variable with no default and no built-in default binding
//
// These do not prevent the catalog from loading; callers inspect
// ValidationErrors to decide whether to proceed.
//
// # Template Bodies
//
// Bodies use {{name}} placeholders. Each body is compiled at load time
// into a sequence of literal and variable segments, so substitution never
// interprets variable names as patterns and costs no parsing per call.
//
// # Concurrency
//
// A loaded Catalog is immutable and safe to share across any number of
// concurrent readers. Store holds the current catalog behind an atomic
// pointer so a reload swaps it in a single step; in-flight readers keep
// the catalog they already resolved. Watcher triggers Store reloads from
// file-system changes.
package catalog
