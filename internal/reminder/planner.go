package reminder

import (
	"time"

	"github.com/fastygo/planner/domain"
)

// Offset separates each reminder from the deadline.
const Offset = 5 * time.Minute

// Planner turns task transitions into intents. It does no I/O.
type Planner struct {
	loc    *time.Location
	offset time.Duration
}

// NewPlanner builds a planner that reads due dates in loc.
func NewPlanner(loc *time.Location) Planner {
	if loc == nil {
		loc = time.Local
	}
	return Planner{loc: loc, offset: Offset}
}

// Location is the zone due dates are interpreted in.
func (p Planner) Location() *time.Location {
	return p.loc
}

// Plan computes the reminders a task should have right now. Completed tasks
// are cancelled; tasks without both a due date and a due time are cleared.
func (p Planner) Plan(task domain.Task, now time.Time) Intent {
	intent := Intent{TaskID: task.ID, OwnerID: task.OwnerID}
	if task.Completed {
		intent.Kind = IntentCancel
		return intent
	}
	deadline, ok := task.ReminderAt(p.loc)
	if !ok {
		intent.Kind = IntentClear
		return intent
	}

	intent.Kind = IntentSchedule
	if before := deadline.Add(-p.offset); before.After(now) {
		intent.Reminders = append(intent.Reminders, p.reminder(task, domain.ReminderBefore, before))
	}
	intent.Reminders = append(intent.Reminders, p.reminder(task, domain.ReminderAfter, deadline.Add(p.offset)))
	return intent
}

// PlanCreate schedules a new task when it carries a due date and time.
func (p Planner) PlanCreate(task domain.Task, now time.Time) []Intent {
	intent := p.Plan(task, now)
	if intent.Kind != IntentSchedule {
		return nil
	}
	return []Intent{intent}
}

// PlanEdit reschedules an edited task. Losing the due date or time clears
// whatever the previous version had scheduled.
func (p Planner) PlanEdit(prev, next domain.Task, now time.Time) []Intent {
	intent := p.Plan(next, now)
	if intent.Kind == IntentClear {
		if _, had := prev.ReminderAt(p.loc); !had || prev.Completed {
			return nil
		}
	}
	if intent.Kind == IntentCancel && prev.Completed {
		return nil
	}
	return []Intent{intent}
}

// PlanToggle cancels on completion and reschedules on un-completion.
func (p Planner) PlanToggle(task domain.Task, now time.Time) []Intent {
	intent := p.Plan(task, now)
	if intent.Kind == IntentClear {
		return nil
	}
	return []Intent{intent}
}

// PlanDelete withdraws everything scheduled for a deleted task.
func (p Planner) PlanDelete(task domain.Task) []Intent {
	return []Intent{{Kind: IntentCancel, TaskID: task.ID, OwnerID: task.OwnerID}}
}

func (p Planner) reminder(task domain.Task, kind domain.ReminderKind, at time.Time) domain.Reminder {
	return domain.Reminder{
		TaskID:  task.ID,
		OwnerID: task.OwnerID,
		Kind:    kind,
		Title:   task.Title,
		FireAt:  at,
	}
}
