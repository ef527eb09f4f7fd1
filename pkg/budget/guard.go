package budget

import (
	"context"
	"log/slog"
	"sync"

	"dealerscope/saturn/pkg/budget/storage"
	"dealerscope/saturn/pkg/pricing"
)

// Summary is a point-in-time view of a Guard's state.
type Summary struct {
	// Ceiling is the configured spend ceiling in minor currency units.
	Ceiling int64

	// Spent is the total recorded cost in minor currency units.
	Spent int64

	// Remaining is max(0, Ceiling - Spent).
	Remaining int64

	// Requests is the number of recorded cost results.
	Requests int

	// AverageCost is the mean recorded cost, zero when Requests is zero.
	AverageCost float64
}

// Guard enforces a spend ceiling over a sequence of cost results.
// The ceiling is fixed at construction; the running total and history
// grow monotonically until Reset.
type Guard struct {
	ceiling int64

	mu      sync.Mutex
	spent   int64
	history []pricing.CostResult

	ledger  storage.Ledger
	metrics *Metrics
	logger  *slog.Logger
}

// GuardOption customizes a Guard at construction time.
type GuardOption func(*Guard)

// WithLedger attaches a persistence ledger. Every accepted cost result
// is appended to it; append failures are logged and otherwise ignored.
func WithLedger(ledger storage.Ledger) GuardOption {
	return func(g *Guard) {
		g.ledger = ledger
	}
}

// WithMetrics attaches Prometheus metrics to the guard.
func WithMetrics(metrics *Metrics) GuardOption {
	return func(g *Guard) {
		g.metrics = metrics
	}
}

// NewGuard creates a budget guard with the given ceiling in minor
// currency units. A negative ceiling is treated as zero.
func NewGuard(ceiling int64, opts ...GuardOption) *Guard {
	if ceiling < 0 {
		ceiling = 0
	}

	g := &Guard{
		ceiling: ceiling,
		logger:  slog.Default().With("component", "budget.guard"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check reports whether an operation with the given estimated cost would
// stay within the ceiling. It does not mutate state and does not reserve
// anything: between a Check and a later Record another caller may spend.
// Concurrent callers should use Reserve instead.
func (g *Guard) Check(estimatedCost int64) bool {
	g.mu.Lock()
	allowed := g.spent+estimatedCost <= g.ceiling
	g.mu.Unlock()

	g.observeCheck(allowed)
	return allowed
}

// Record adds the result's cost to the running total and appends the
// result to history. It always succeeds and does not enforce the
// ceiling; enforcement is the caller's responsibility via Check or
// Reserve before committing to the expensive operation.
func (g *Guard) Record(result pricing.CostResult) {
	g.mu.Lock()
	g.recordLocked(result)
	g.mu.Unlock()

	g.observeUsage()
	g.appendLedger(result)
}

// Reserve atomically checks the ceiling against the result's cost and,
// if it fits, records it. Returns false and leaves state untouched when
// recording would exceed the ceiling. This is the race-free path for
// concurrent callers.
func (g *Guard) Reserve(result pricing.CostResult) bool {
	g.mu.Lock()
	if g.spent+result.Cost > g.ceiling {
		g.mu.Unlock()
		g.observeCheck(false)
		return false
	}
	g.recordLocked(result)
	g.mu.Unlock()

	g.observeCheck(true)
	g.observeUsage()
	g.appendLedger(result)
	return true
}

// recordLocked appends the result. Caller must hold g.mu.
func (g *Guard) recordLocked(result pricing.CostResult) {
	g.spent += result.Cost
	g.history = append(g.history, result)
}

// Spent returns the total recorded cost since the last reset.
func (g *Guard) Spent() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.spent
}

// Remaining returns the budget left before the ceiling, never negative.
func (g *Guard) Remaining() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remainingLocked()
}

// remainingLocked computes remaining budget. Caller must hold g.mu.
func (g *Guard) remainingLocked() int64 {
	if g.spent >= g.ceiling {
		return 0
	}
	return g.ceiling - g.spent
}

// Ceiling returns the fixed spend ceiling.
func (g *Guard) Ceiling() int64 {
	return g.ceiling
}

// History returns a copy of the recorded cost results in record order.
func (g *Guard) History() []pricing.CostResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]pricing.CostResult, len(g.history))
	copy(out, g.history)
	return out
}

// Summary returns the current budget summary.
func (g *Guard) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Summary{
		Ceiling:   g.ceiling,
		Spent:     g.spent,
		Remaining: g.remainingLocked(),
		Requests:  len(g.history),
	}
	if s.Requests > 0 {
		s.AverageCost = float64(g.spent) / float64(s.Requests)
	}
	return s
}

// Reset clears the running total and history, starting a new run.
// An attached ledger is cleared as well, best-effort.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.spent = 0
	g.history = nil
	g.mu.Unlock()

	g.observeUsage()

	if g.ledger != nil {
		if err := g.ledger.Clear(context.Background()); err != nil {
			g.logger.Warn("failed to clear budget ledger", "error", err)
		}
	}
}

// appendLedger persists a recorded result, best-effort.
func (g *Guard) appendLedger(result pricing.CostResult) {
	if g.ledger == nil {
		return
	}
	if err := g.ledger.Append(context.Background(), storage.NewRecord(result)); err != nil {
		g.logger.Warn("failed to append to budget ledger",
			"provider", result.Provider,
			"model", result.Model,
			"cost", result.Cost,
			"error", err,
		)
	}
}

func (g *Guard) observeCheck(allowed bool) {
	if g.metrics != nil {
		g.metrics.ObserveCheck(allowed)
	}
}

func (g *Guard) observeUsage() {
	if g.metrics != nil {
		g.metrics.ObserveUsage(g.Summary())
	}
}
