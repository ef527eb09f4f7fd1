package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dealerscope/saturn/pkg/pricing"
)

// ledgerFactories builds each backend fresh for shared conformance tests.
func ledgerFactories(t *testing.T) map[string]func(t *testing.T) Ledger {
	t.Helper()

	return map[string]func(t *testing.T) Ledger{
		"memory": func(t *testing.T) Ledger {
			return NewMemoryLedger()
		},
		"sqlite": func(t *testing.T) Ledger {
			path := filepath.Join(t.TempDir(), "ledger.db")
			ledger, err := NewSQLiteLedger(path)
			if err != nil {
				t.Fatalf("NewSQLiteLedger failed: %v", err)
			}
			return ledger
		},
	}
}

func sampleRecord(cost int64) Record {
	return NewRecord(pricing.CostResult{
		Provider:     "p",
		Model:        "m",
		InputTokens:  100,
		OutputTokens: 50,
		Cost:         cost,
	})
}

func TestLedger_AppendAndList(t *testing.T) {
	for name, factory := range ledgerFactories(t) {
		t.Run(name, func(t *testing.T) {
			ledger := factory(t)
			defer ledger.Close()

			ctx := context.Background()

			first := sampleRecord(100)
			second := sampleRecord(250)

			if err := ledger.Append(ctx, first); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if err := ledger.Append(ctx, second); err != nil {
				t.Fatalf("Append failed: %v", err)
			}

			records, err := ledger.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("Expected 2 records, got %d", len(records))
			}
			if records[0].ID != first.ID || records[1].ID != second.ID {
				t.Error("Records not in append order")
			}
			if records[1].Cost != 250 {
				t.Errorf("Expected cost 250, got %d", records[1].Cost)
			}

			total, err := ledger.Total(ctx)
			if err != nil {
				t.Fatalf("Total failed: %v", err)
			}
			if total != 350 {
				t.Errorf("Expected total 350, got %d", total)
			}
		})
	}
}

func TestLedger_Clear(t *testing.T) {
	for name, factory := range ledgerFactories(t) {
		t.Run(name, func(t *testing.T) {
			ledger := factory(t)
			defer ledger.Close()

			ctx := context.Background()

			if err := ledger.Append(ctx, sampleRecord(100)); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if err := ledger.Clear(ctx); err != nil {
				t.Fatalf("Clear failed: %v", err)
			}

			records, err := ledger.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(records) != 0 {
				t.Errorf("Expected empty ledger after Clear, got %d records", len(records))
			}

			total, err := ledger.Total(ctx)
			if err != nil {
				t.Fatalf("Total failed: %v", err)
			}
			if total != 0 {
				t.Errorf("Expected total 0 after Clear, got %d", total)
			}
		})
	}
}

func TestLedger_RejectsEmptyID(t *testing.T) {
	for name, factory := range ledgerFactories(t) {
		t.Run(name, func(t *testing.T) {
			ledger := factory(t)
			defer ledger.Close()

			err := ledger.Append(context.Background(), Record{RecordedAt: time.Now()})
			if err == nil {
				t.Error("Expected error for record with empty ID")
			}
		})
	}
}

func TestSQLiteLedger_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	ledger, err := NewSQLiteLedger(path)
	if err != nil {
		t.Fatalf("NewSQLiteLedger failed: %v", err)
	}

	record := sampleRecord(420)
	if err := ledger.Append(ctx, record); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteLedger(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID || records[0].Cost != 420 {
		t.Errorf("Expected persisted record, got %+v", records)
	}
}

func TestNewRecord_CopiesResult(t *testing.T) {
	result := pricing.CostResult{
		Provider:     "openai",
		Model:        "gpt-4o",
		InputTokens:  1000,
		OutputTokens: 200,
		Cost:         37,
	}

	record := NewRecord(result)

	if record.ID == "" {
		t.Error("Expected record ID to be assigned")
	}
	if record.RecordedAt.IsZero() {
		t.Error("Expected record timestamp to be assigned")
	}
	if record.Provider != "openai" || record.Model != "gpt-4o" ||
		record.InputTokens != 1000 || record.OutputTokens != 200 || record.Cost != 37 {
		t.Errorf("Record does not mirror cost result: %+v", record)
	}
}
