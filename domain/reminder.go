package domain

import "time"

// ReminderKind tells whether a notification fires ahead of or after the deadline.
type ReminderKind string

const (
	ReminderBefore ReminderKind = "before"
	ReminderAfter  ReminderKind = "after"
)

// Reminder is one local notification pinned to an instant.
type Reminder struct {
	TaskID  string       `json:"task_id"`
	OwnerID string       `json:"owner_id"`
	Kind    ReminderKind `json:"kind"`
	Title   string       `json:"title"`
	FireAt  time.Time    `json:"fire_at"`
}

// ScheduledReminder is a reminder held by the delivery collaborator.
type ScheduledReminder struct {
	Handle string `json:"handle"`
	Reminder
}

// Message renders the notification text.
func (r Reminder) Message() (title, body string) {
	switch r.Kind {
	case ReminderBefore:
		return "Task coming up", `"` + r.Title + `" is due in 5 minutes`
	default:
		return "Task needs attention", `"` + r.Title + `" was due 5 minutes ago and is still pending`
	}
}
