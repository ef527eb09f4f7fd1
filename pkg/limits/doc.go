// Package limits enforces the per-template rate policy carried in the
// catalog.
//
// Templates declare two dispatch limits: a minimum delay between runs
// (min_delay_ms) and a per-run spend budget (run_budget). The catalog
// only carries these as data; this package makes them operative for
// the layer that dispatches hydrated prompts.
//
// # Pacing
//
// Pacer tracks the last dispatch time per template and computes how
// long a caller must wait before the next one. Wait blocks for that
// duration, honoring context cancellation.
//
// # Per-run spend
//
// RunTracker accumulates recorded cost per template within one run and
// rejects spends that would push a template past its declared run
// budget. It complements the global ceiling in pkg/budget: the guard
// caps the whole run, the tracker caps each template's share.
package limits
