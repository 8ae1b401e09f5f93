package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/infrastructure/push"
	"github.com/fastygo/planner/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ReminderQueue hands out reminders whose fire time has come.
type ReminderQueue interface {
	PopDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledReminder, error)
}

// PushSender delivers a notification and reports tokens that are no longer valid.
type PushSender interface {
	SendToDevices(ctx context.Context, tokens []string, n push.Notification) ([]string, error)
}

// FiredRecorder notes delivered reminders in the ledger.
type FiredRecorder interface {
	MarkFired(ctx context.Context, reminder domain.ScheduledReminder)
}

// DispatcherConfig controls how many reminders one pass claims.
type DispatcherConfig struct {
	BatchSize int
}

// ReminderDispatcher pushes due reminders to the owner's devices.
type ReminderDispatcher struct {
	queue   ReminderQueue
	devices repository.DeviceRepository
	sender  PushSender
	fired   FiredRecorder
	monitor ConnectionHealth
	now     func() time.Time
	logger  *zap.Logger
	cfg     DispatcherConfig
}

func NewReminderDispatcher(
	queue ReminderQueue,
	devices repository.DeviceRepository,
	sender PushSender,
	fired FiredRecorder,
	monitor ConnectionHealth,
	logger *zap.Logger,
	cfg DispatcherConfig,
) *ReminderDispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderDispatcher{
		queue:   queue,
		devices: devices,
		sender:  sender,
		fired:   fired,
		monitor: monitor,
		now:     time.Now,
		logger:  logger,
		cfg:     cfg,
	}
}

// Job adapts Dispatch for the scheduler.
func (d *ReminderDispatcher) Job(timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := d.Dispatch(ctx); err != nil {
			d.logger.Error("reminder dispatch failed", zap.Error(err))
		}
	}
}

// Dispatch claims due reminders and pushes each one. Claimed reminders are
// marked fired even when the owner has no devices, so they are not retried.
func (d *ReminderDispatcher) Dispatch(ctx context.Context) (int, error) {
	if d == nil || d.queue == nil || d.sender == nil {
		return 0, nil
	}
	if d.monitor != nil && !d.monitor.IsOnline() {
		d.logger.Debug("skipping reminder dispatch (offline)")
		return 0, nil
	}

	due, err := d.queue.PopDue(ctx, d.now(), d.cfg.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, reminder := range due {
		if d.deliver(ctx, reminder) {
			sent++
		}
		if d.fired != nil {
			d.fired.MarkFired(ctx, reminder)
		}
	}
	if len(due) > 0 {
		d.logger.Info("reminders dispatched", zap.Int("due", len(due)), zap.Int("sent", sent))
	}
	return sent, nil
}

func (d *ReminderDispatcher) deliver(ctx context.Context, reminder domain.ScheduledReminder) bool {
	log := d.logger.With(zap.String("task_id", reminder.TaskID), zap.String("kind", string(reminder.Kind)))

	tokens, err := d.devices.Tokens(ctx, reminder.OwnerID)
	if err != nil {
		log.Warn("failed to load device tokens", zap.Error(err))
		return false
	}
	if len(tokens) == 0 {
		log.Debug("no devices registered")
		return false
	}

	title, body := reminder.Message()
	failed, err := d.sender.SendToDevices(ctx, tokens, push.Notification{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":    "task_reminder",
			"task_id": reminder.TaskID,
			"kind":    string(reminder.Kind),
		},
	})
	if err != nil {
		log.Warn("failed to push reminder", zap.Error(err))
		return false
	}
	if len(failed) > 0 {
		if err := d.devices.Remove(ctx, reminder.OwnerID, failed...); err != nil {
			log.Warn("failed to drop stale device tokens", zap.Error(err))
		}
	}
	return len(failed) < len(tokens)
}
