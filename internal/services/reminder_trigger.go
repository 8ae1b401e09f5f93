package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/internal/reminder"
)

// Rescanner runs one safety-net pass.
type Rescanner interface {
	Scan(ctx context.Context) reminder.ScanResult
}

// ReminderTrigger is the periodic callback of the reminder safety net. It
// remembers the outcome of the last pass.
type ReminderTrigger struct {
	scanner Rescanner
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	last   reminder.ScanResult
	lastAt time.Time
}

func NewReminderTrigger(scanner Rescanner, timeout time.Duration, logger *zap.Logger) *ReminderTrigger {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderTrigger{
		scanner: scanner,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes one pass with its own timeout and records the result.
func (t *ReminderTrigger) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	t.RunContext(ctx)
}

// RunContext executes one pass bound to ctx.
func (t *ReminderTrigger) RunContext(ctx context.Context) reminder.ScanResult {
	result := t.scanner.Scan(ctx)

	t.mu.Lock()
	t.last = result
	t.lastAt = time.Now()
	t.mu.Unlock()

	if result == reminder.ResultFailed {
		t.logger.Warn("reminder rescan failed")
	}
	return result
}

// Last returns the most recent result and when it was produced.
func (t *ReminderTrigger) Last() (reminder.ScanResult, time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last, t.lastAt
}
