package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteLedger implements Ledger using SQLite for persistence. It is
// suitable for single-instance deployments where the ledger must survive
// process restarts.
//
// SQLiteLedger uses a write-ahead log (WAL) for better concurrent
// performance.
type SQLiteLedger struct {
	db        *sql.DB
	mu        sync.RWMutex
	closeOnce sync.Once

	appendStmt *sql.Stmt
	listStmt   *sql.Stmt
	totalStmt  *sql.Stmt
	clearStmt  *sql.Stmt
}

// SQLiteLedgerConfig configures the SQLite ledger.
type SQLiteLedgerConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteLedger creates a new SQLite ledger with default settings.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	return NewSQLiteLedgerWithConfig(SQLiteLedgerConfig{
		Path:        path,
		BusyTimeout: 5 * time.Second,
	})
}

// NewSQLiteLedgerWithConfig creates a new SQLite ledger with custom
// configuration.
func NewSQLiteLedgerWithConfig(cfg SQLiteLedgerConfig) (*SQLiteLedger, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("ledger path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// Single writer; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	ledger := &SQLiteLedger{db: db}

	if err := ledger.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := ledger.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return ledger, nil
}

// initSchema creates the records table if it does not exist.
func (s *SQLiteLedger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS budget_records (
		seq           INTEGER PRIMARY KEY AUTOINCREMENT,
		id            TEXT NOT NULL UNIQUE,
		recorded_at   TEXT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		cost          INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_budget_records_recorded_at
		ON budget_records(recorded_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return nil
}

// prepareStatements pre-compiles the SQL statements used by the ledger.
func (s *SQLiteLedger) prepareStatements() error {
	var err error

	s.appendStmt, err = s.db.Prepare(`
		INSERT INTO budget_records
			(id, recorded_at, provider, model, input_tokens, output_tokens, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare append statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT id, recorded_at, provider, model, input_tokens, output_tokens, cost
		FROM budget_records ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.totalStmt, err = s.db.Prepare(`
		SELECT COALESCE(SUM(cost), 0) FROM budget_records`)
	if err != nil {
		return fmt.Errorf("failed to prepare total statement: %w", err)
	}

	s.clearStmt, err = s.db.Prepare(`DELETE FROM budget_records`)
	if err != nil {
		return fmt.Errorf("failed to prepare clear statement: %w", err)
	}

	return nil
}

// Append adds a record to the ledger.
func (s *SQLiteLedger) Append(ctx context.Context, record Record) error {
	if record.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.appendStmt.ExecContext(ctx,
		record.ID,
		record.RecordedAt.Format(time.RFC3339Nano),
		record.Provider,
		record.Model,
		record.InputTokens,
		record.OutputTokens,
		record.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger record: %w", err)
	}
	return nil
}

// List returns all records in append order.
func (s *SQLiteLedger) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var recordedAt string

		if err := rows.Scan(&r.ID, &recordedAt, &r.Provider, &r.Model,
			&r.InputTokens, &r.OutputTokens, &r.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan ledger record: %w", err)
		}

		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			r.RecordedAt = t
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger records: %w", err)
	}
	return records, nil
}

// Total returns the sum of all record costs.
func (s *SQLiteLedger) Total(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	if err := s.totalStmt.QueryRowContext(ctx).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum ledger records: %w", err)
	}
	return total, nil
}

// Clear removes all records.
func (s *SQLiteLedger) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.clearStmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}
	return nil
}

// Close releases the database handle. Safe to call multiple times.
func (s *SQLiteLedger) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.appendStmt, s.listStmt, s.totalStmt, s.clearStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}
