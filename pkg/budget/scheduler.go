package budget

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// ResetScheduler resets a Guard on a cron schedule. It is used when a
// governed "run" is a recurring billing window (e.g., one per day)
// rather than a single batch operation.
type ResetScheduler struct {
	guard    *Guard
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewResetScheduler creates a scheduler that resets guard according to
// the given cron expression.
//
// Common expressions:
//   - "0 0 * * *"   - Daily at midnight
//   - "0 * * * *"   - Hourly
//   - "0 0 1 * *"   - Monthly on the 1st
func NewResetScheduler(guard *Guard, schedule string) *ResetScheduler {
	return &ResetScheduler{
		guard:    guard,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "budget.scheduler"),
	}
}

// Start begins the scheduled resets. If the schedule is empty the
// scheduler does nothing and Start returns nil.
func (s *ResetScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if s.schedule == "" {
		s.logger.Info("budget reset schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid budget reset schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReset); err != nil {
		return fmt.Errorf("failed to schedule budget reset: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("budget reset scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled resets. Safe to call multiple times.
func (s *ResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info("budget reset scheduler stopped")
}

// runReset performs one scheduled reset.
func (s *ResetScheduler) runReset() {
	summary := s.guard.Summary()
	s.guard.Reset()

	s.logger.Info("budget reset",
		"spent", summary.Spent,
		"requests", summary.Requests,
		"ceiling", summary.Ceiling,
	)
}
