package limits

import (
	"sync"

	"dealerscope/saturn/pkg/catalog"
)

// RunTracker caps each template's spend within one run at its declared
// run budget. Templates without a run budget are unlimited here; the
// global ceiling in pkg/budget still applies.
//
// RunTracker is thread-safe.
type RunTracker struct {
	mu    sync.Mutex
	spent map[string]int64
}

// NewRunTracker creates an empty tracker for one run.
func NewRunTracker() *RunTracker {
	return &RunTracker{spent: make(map[string]int64)}
}

// Reserve atomically checks and records a spend against the template's
// run budget. It returns false, leaving the tally unchanged, when the
// spend would push the template past its budget.
func (t *RunTracker) Reserve(tmpl *catalog.Template, cost int64) bool {
	budget := tmpl.RateLimit.RunBudget
	if budget <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.spent[tmpl.ID]+cost > budget {
		return false
	}
	t.spent[tmpl.ID] += cost
	return true
}

// Spent returns the template's recorded spend in this run.
func (t *RunTracker) Spent(templateID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spent[templateID]
}

// Reset clears every tally, starting a fresh run.
func (t *RunTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spent = make(map[string]int64)
}
