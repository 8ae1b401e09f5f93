package reminder

import (
	"context"
	"time"
)

// State is where a task sits in the reminder lifecycle.
type State string

const (
	StateUnscheduled State = "unscheduled"
	StateScheduled   State = "scheduled"
	StateFired       State = "fired"
	StateCancelled   State = "cancelled"
)

// Record is the ledger entry of one task.
type Record struct {
	TaskID    string      `json:"task_id"`
	OwnerID   string      `json:"owner_id"`
	State     State       `json:"state"`
	Handles   []string    `json:"handles,omitempty"`
	FireAt    []time.Time `json:"fire_at,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Fire removes handle from the pending set. The record becomes fired once
// nothing is left pending. Reports whether handle was pending.
func (r *Record) Fire(handle string, at time.Time) bool {
	for i, h := range r.Handles {
		if h != handle {
			continue
		}
		r.Handles = append(r.Handles[:i], r.Handles[i+1:]...)
		if i < len(r.FireAt) {
			r.FireAt = append(r.FireAt[:i], r.FireAt[i+1:]...)
		}
		if len(r.Handles) == 0 {
			r.State = StateFired
		}
		r.UpdatedAt = at
		return true
	}
	return false
}

// Ledger persists reminder records keyed by task id.
type Ledger interface {
	Get(ctx context.Context, taskID string) (Record, bool, error)
	Put(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
}
