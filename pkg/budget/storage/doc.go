// Package storage provides append-only persistence for accepted budget
// cost records.
//
// # Backends
//
// Two Ledger implementations are provided:
//
//   - MemoryLedger: in-process slice, no persistence, the default.
//   - SQLiteLedger: durable single-file store using modernc.org/sqlite,
//     suitable for single-instance deployments that must survive restarts.
//
// # Semantics
//
// A ledger is an immutable log: records are only ever appended or
// cleared wholesale at a run boundary. Totals are derived by folding the
// records, never stored. All implementations are safe for concurrent use.
package storage
