package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
)

// Delivery is the part of the notification collaborator the runner drives.
type Delivery interface {
	ScheduleAt(ctx context.Context, at time.Time, reminder domain.Reminder) (string, error)
	CancelAllFor(ctx context.Context, taskID string) error
}

// Preferences answers whether an owner wants reminders at all.
type Preferences interface {
	RemindersEnabled(ctx context.Context, ownerID string) (bool, error)
}

// Report counts what a Run did.
type Report struct {
	Scheduled int
	Cancelled int
	Skipped   int
	Failed    int
}

// Runner executes intents against the delivery collaborator. Failures are
// logged and counted, never returned.
type Runner struct {
	delivery Delivery
	ledger   Ledger
	prefs    Preferences
	now      func() time.Time
	logger   *zap.Logger
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithLedger records every transition in l.
func WithLedger(l Ledger) RunnerOption {
	return func(r *Runner) { r.ledger = l }
}

// WithPreferences gates scheduling on the owner's reminder preference.
func WithPreferences(p Preferences) RunnerOption {
	return func(r *Runner) { r.prefs = p }
}

// WithClock overrides the time source used for ledger stamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

func NewRunner(delivery Delivery, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		delivery: delivery,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies intents in order. Each task's pending reminders are cancelled
// before new ones are registered, so repeating a Run never duplicates them.
func (r *Runner) Run(ctx context.Context, intents []Intent) Report {
	var report Report
	if r == nil || r.delivery == nil {
		return report
	}
	for _, intent := range intents {
		r.apply(ctx, intent, &report)
	}
	return report
}

func (r *Runner) apply(ctx context.Context, intent Intent, report *Report) {
	log := r.logger.With(
		zap.String("task_id", intent.TaskID),
		zap.String("intent", string(intent.Kind)),
	)

	if err := r.delivery.CancelAllFor(ctx, intent.TaskID); err != nil {
		log.Warn("failed to cancel reminders", zap.Error(err))
		report.Failed++
		return
	}

	record := Record{
		TaskID:  intent.TaskID,
		OwnerID: intent.OwnerID,
		State:   intent.State(),
	}

	if intent.Kind != IntentSchedule {
		report.Cancelled++
		r.record(ctx, record, log)
		return
	}

	if !r.enabled(ctx, intent.OwnerID, log) {
		report.Skipped++
		record.State = StateUnscheduled
		r.record(ctx, record, log)
		return
	}

	for _, reminder := range intent.Reminders {
		handle, err := r.delivery.ScheduleAt(ctx, reminder.FireAt, reminder)
		if err != nil {
			log.Warn("failed to schedule reminder",
				zap.String("kind", string(reminder.Kind)),
				zap.Time("fire_at", reminder.FireAt),
				zap.Error(err),
			)
			report.Failed++
			continue
		}
		record.Handles = append(record.Handles, handle)
		record.FireAt = append(record.FireAt, reminder.FireAt)
		report.Scheduled++
	}
	if len(record.Handles) == 0 {
		record.State = StateUnscheduled
	}
	r.record(ctx, record, log)
}

func (r *Runner) enabled(ctx context.Context, ownerID string, log *zap.Logger) bool {
	if r.prefs == nil {
		return true
	}
	ok, err := r.prefs.RemindersEnabled(ctx, ownerID)
	if err != nil {
		log.Warn("failed to read reminder preference", zap.Error(err))
		return false
	}
	return ok
}

func (r *Runner) record(ctx context.Context, record Record, log *zap.Logger) {
	if r.ledger == nil {
		return
	}
	record.UpdatedAt = r.now()
	if err := r.ledger.Put(ctx, record); err != nil {
		log.Warn("failed to update reminder ledger", zap.Error(err))
	}
}

// MarkFired records that the reminder behind handle was delivered.
func (r *Runner) MarkFired(ctx context.Context, reminder domain.ScheduledReminder) {
	if r == nil || r.ledger == nil {
		return
	}
	log := r.logger.With(zap.String("task_id", reminder.TaskID), zap.String("handle", reminder.Handle))
	record, ok, err := r.ledger.Get(ctx, reminder.TaskID)
	if err != nil {
		log.Warn("failed to read reminder ledger", zap.Error(err))
		return
	}
	if !ok || !record.Fire(reminder.Handle, r.now()) {
		return
	}
	if err := r.ledger.Put(ctx, record); err != nil {
		log.Warn("failed to update reminder ledger", zap.Error(err))
	}
}
