// Package reminder decides when due-date notifications fire and keeps the
// delivery collaborator in step with task mutations.
//
// Mutations never talk to the delivery collaborator directly. They ask the
// Planner for Intents and hand those to a Runner.
package reminder

import "github.com/fastygo/planner/domain"

// IntentKind is the action an Intent asks the runner to take.
type IntentKind string

const (
	// IntentSchedule replaces every pending reminder of the task with Reminders.
	IntentSchedule IntentKind = "schedule"
	// IntentCancel withdraws reminders of a completed or deleted task.
	IntentCancel IntentKind = "cancel"
	// IntentClear withdraws reminders of a task that lost its due date or time.
	IntentClear IntentKind = "clear"
)

// Intent is a scheduling side effect expressed as a value.
type Intent struct {
	Kind      IntentKind        `json:"kind"`
	TaskID    string            `json:"task_id"`
	OwnerID   string            `json:"owner_id"`
	Reminders []domain.Reminder `json:"reminders,omitempty"`
}

// State returns the ledger state the task ends in once the intent ran.
func (i Intent) State() State {
	switch i.Kind {
	case IntentSchedule:
		if len(i.Reminders) == 0 {
			return StateUnscheduled
		}
		return StateScheduled
	case IntentCancel:
		return StateCancelled
	default:
		return StateUnscheduled
	}
}
