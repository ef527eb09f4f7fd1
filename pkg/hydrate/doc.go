// Package hydrate binds variable values into catalog templates to
// produce final prompt text.
//
// # Resolution Order
//
// Each declared variable resolves from the first tier that supplies a
// non-empty value, highest priority first:
//
//  1. per-call override
//  2. caller-supplied binding set
//  3. built-in catalog-wide default
//  4. the variable's own declared default
//
// A required variable that no tier resolves is substituted with the
// visible sentinel "[MISSING:<name>]" and reported in MissingVariables;
// hydration never fails over missing data, so a batch of many prompts
// survives one bad variable. Optional variables with no value substitute
// the empty string.
//
// # Sizing Estimates
//
// EstimatedUnits and EstimatedCost on a HydratedPrompt come from a
// character-count heuristic (ceil(len/4) units at a fixed average unit
// price). They exist for pre-flight sizing only and are not the
// authoritative cost; price real dispatches with pkg/pricing against a
// concrete provider and model.
//
// # Purity
//
// Hydration is a pure function of the template and the effective binding
// set: identical inputs produce byte-identical output, and no input map
// or catalog state is ever mutated.
package hydrate
