package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger implements Ledger using an in-process slice. This is the
// default ledger; all records are lost when the process exits.
//
// MemoryLedger is thread-safe using sync.RWMutex.
type MemoryLedger struct {
	mu      sync.RWMutex
	records []Record
	closed  bool
}

// NewMemoryLedger creates a new in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Append adds a record to the ledger.
func (m *MemoryLedger) Append(ctx context.Context, record Record) error {
	if record.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("ledger is closed")
	}

	m.records = append(m.records, record)
	return nil
}

// List returns a copy of all records in append order.
func (m *MemoryLedger) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("ledger is closed")
	}

	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Total returns the sum of all record costs.
func (m *MemoryLedger) Total(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, fmt.Errorf("ledger is closed")
	}

	var total int64
	for _, r := range m.records {
		total += r.Cost
	}
	return total, nil
}

// Clear removes all records.
func (m *MemoryLedger) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("ledger is closed")
	}

	m.records = nil
	return nil
}

// Close marks the ledger closed. Subsequent operations fail.
func (m *MemoryLedger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
