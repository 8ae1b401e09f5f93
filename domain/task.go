package domain

import (
	"strings"
	"time"
)

// Priority is the user-assigned importance of a task. The empty value means unset.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts the three named levels or an empty string.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return PriorityNone, Invalidf("invalid priority %q", s)
	}
}

// Rank orders priorities: high=3, medium=2, low=1, unset=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task represents a user-owned to-do item.
type Task struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DueDate         Date       `json:"due_date"`
	DueTime         Clock      `json:"due_time"`
	Priority        Priority   `json:"priority,omitempty"`
	CategoryID      string     `json:"category_id,omitempty"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletedOnTime *bool      `json:"completed_on_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Normalize enforces the field invariants: a due time without a due date is
// dropped and completion details only exist on completed tasks.
func (t *Task) Normalize() {
	if t == nil {
		return
	}
	t.Title = strings.TrimSpace(t.Title)
	if !t.DueDate.Valid {
		t.DueTime = Clock{}
	}
	if !t.Completed {
		t.CompletedAt = nil
		t.CompletedOnTime = nil
	}
}

// Validate checks what must hold before any store call.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	return nil
}

// Deadline is the due date at the due time, or at 23:59:59 when no time is set.
func (t Task) Deadline(loc *time.Location) (time.Time, bool) {
	if !t.DueDate.Valid {
		return time.Time{}, false
	}
	clock := EndOfDay
	if t.DueTime.Valid {
		clock = t.DueTime
	}
	return At(t.DueDate, clock, loc), true
}

// ReminderAt is the deadline of tasks that carry both a due date and a due time.
func (t Task) ReminderAt(loc *time.Location) (time.Time, bool) {
	if !t.DueDate.Valid || !t.DueTime.Valid {
		return time.Time{}, false
	}
	return At(t.DueDate, t.DueTime, loc), true
}

// Toggle flips completion. Completing stamps CompletedAt with now and records
// whether it happened by the deadline; un-completing clears both.
func Toggle(t Task, now time.Time) Task {
	t.Completed = !t.Completed
	if !t.Completed {
		t.CompletedAt = nil
		t.CompletedOnTime = nil
		return t
	}
	at := now
	t.CompletedAt = &at
	t.CompletedOnTime = nil
	if deadline, ok := t.Deadline(now.Location()); ok {
		onTime := !now.After(deadline)
		t.CompletedOnTime = &onTime
	}
	return t
}

// TaskPatch describes a partial update. A nil field leaves the value unchanged.
type TaskPatch struct {
	Title           *string
	Description     *string
	DueDate         *Date
	DueTime         *Clock
	Priority        *Priority
	CategoryID      *string
	Completed       *bool
	CompletedAt     **time.Time
	CompletedOnTime **bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.DueTime == nil &&
		p.Priority == nil && p.CategoryID == nil && p.Completed == nil &&
		p.CompletedAt == nil && p.CompletedOnTime == nil
}

// Validate rejects patches that would break task invariants.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Priority != nil {
		if _, err := ParsePriority(string(*p.Priority)); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns a copy of t with the patch applied and invariants restored.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		t.CompletedAt = *p.CompletedAt
	}
	if p.CompletedOnTime != nil {
		t.CompletedOnTime = *p.CompletedOnTime
	}
	t.Normalize()
	return t
}

// CompletionPatch carries the completion fields of a toggled task.
func CompletionPatch(t Task) TaskPatch {
	completed := t.Completed
	completedAt := t.CompletedAt
	onTime := t.CompletedOnTime
	return TaskPatch{
		Completed:       &completed,
		CompletedAt:     &completedAt,
		CompletedOnTime: &onTime,
	}
}
