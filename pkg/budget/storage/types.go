package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dealerscope/saturn/pkg/pricing"
)

// Record is one accepted cost result in the ledger.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// RecordedAt is when the record was appended.
	RecordedAt time.Time `json:"recorded_at"`

	// Provider is the provider the cost was computed for.
	Provider string `json:"provider"`

	// Model is the model the cost was computed for.
	Model string `json:"model"`

	// InputTokens is the input token count of the priced request.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the output token count of the priced request.
	OutputTokens int `json:"output_tokens"`

	// Cost is the recorded cost in minor currency units.
	Cost int64 `json:"cost"`
}

// NewRecord builds a ledger record from a cost result, assigning a fresh
// ID and timestamp.
func NewRecord(result pricing.CostResult) Record {
	return Record{
		ID:           uuid.New().String(),
		RecordedAt:   time.Now().UTC(),
		Provider:     result.Provider,
		Model:        result.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		Cost:         result.Cost,
	}
}

// Ledger defines the interface for budget record persistence.
// Implementations must be thread-safe.
type Ledger interface {
	// Append adds a record to the ledger.
	Append(ctx context.Context, record Record) error

	// List returns all records in append order.
	List(ctx context.Context) ([]Record, error)

	// Total returns the sum of all record costs.
	Total(ctx context.Context) (int64, error)

	// Clear removes all records. Used at run boundaries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the ledger.
	// The ledger should not be used after calling Close.
	Close() error
}
