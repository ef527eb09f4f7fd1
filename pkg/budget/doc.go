// Package budget provides spend-ceiling enforcement for priced
// text-generation requests.
//
// # Overview
//
// A Guard holds a fixed ceiling (in minor currency units), a running
// total, and the ordered history of accepted cost results. It is created
// once per governed run and reset explicitly by its owner between runs.
//
// # Check-Then-Act Race
//
// Check and Record are separate operations, so two concurrent callers
// could both pass a Check before either Records and push the total past
// the ceiling. Reserve closes that race: it performs the check and the
// record inside one critical section and either commits the cost or
// leaves the state untouched. Concurrent callers should prefer Reserve;
// Check remains available as an advisory, non-mutating predicate.
//
//	guard := budget.NewGuard(50000) // 500.00 ceiling
//
//	if !guard.Reserve(result) {
//	    // ceiling would be exceeded, hard stop for this request
//	}
//
// # Ledger Persistence
//
// A Guard can be given a storage.Ledger that receives every accepted
// cost result as an append-only record. Ledger writes are best-effort:
// a failing ledger is logged and never blocks or fails the budget
// decision.
//
// # Scheduled Resets
//
// ResetScheduler resets a Guard on a cron schedule, marking run
// boundaries for deployments where a "run" is a billing window rather
// than a single batch operation.
//
// # Thread Safety
//
// All Guard operations are safe for concurrent use; a single sync.Mutex
// protects the total and the history.
package budget
