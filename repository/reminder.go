package repository

import (
	"context"
	"time"

	"github.com/fastygo/planner/domain"
)

// ReminderRepository is the notification delivery collaborator: it holds
// reminders until their fire time.
type ReminderRepository interface {
	ScheduleAt(ctx context.Context, at time.Time, reminder domain.Reminder) (string, error)
	CancelAllFor(ctx context.Context, taskID string) error
	ListScheduled(ctx context.Context) ([]domain.ScheduledReminder, error)
	// PopDue claims reminders whose fire time is not after now.
	PopDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledReminder, error)
}

// DeviceRepository tracks push tokens per owner.
type DeviceRepository interface {
	Register(ctx context.Context, ownerID, token string) error
	Tokens(ctx context.Context, ownerID string) ([]string, error)
	Remove(ctx context.Context, ownerID string, tokens ...string) error
}
