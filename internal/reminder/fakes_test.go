package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fastygo/planner/domain"
)

var errDelivery = errors.New("delivery unavailable")

type fakeDelivery struct {
	mu           sync.Mutex
	seq          int
	pending      map[string][]domain.ScheduledReminder
	failCancel   bool
	failSchedule bool
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{pending: make(map[string][]domain.ScheduledReminder)}
}

func (f *fakeDelivery) ScheduleAt(_ context.Context, at time.Time, r domain.Reminder) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSchedule {
		return "", errDelivery
	}
	f.seq++
	handle := fmt.Sprintf("h%d", f.seq)
	r.FireAt = at
	f.pending[r.TaskID] = append(f.pending[r.TaskID], domain.ScheduledReminder{Handle: handle, Reminder: r})
	return handle, nil
}

func (f *fakeDelivery) CancelAllFor(_ context.Context, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCancel {
		return errDelivery
	}
	delete(f.pending, taskID)
	return nil
}

func (f *fakeDelivery) forTask(taskID string) []domain.ScheduledReminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ScheduledReminder(nil), f.pending[taskID]...)
}

type memLedger struct {
	records map[string]Record
}

func newMemLedger() *memLedger {
	return &memLedger{records: make(map[string]Record)}
}

func (m *memLedger) Get(_ context.Context, taskID string) (Record, bool, error) {
	r, ok := m.records[taskID]
	return r, ok, nil
}

func (m *memLedger) Put(_ context.Context, r Record) error {
	m.records[r.TaskID] = r
	return nil
}

func (m *memLedger) List(context.Context) ([]Record, error) {
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

type fakePrefs struct {
	disabled map[string]bool
	err      error
}

func (f fakePrefs) RemindersEnabled(_ context.Context, ownerID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.disabled[ownerID], nil
}

type fakeSource struct {
	tasks []domain.Task
	err   error
}

func (f fakeSource) ListTimedPending(context.Context, time.Time, time.Time) ([]domain.Task, error) {
	return f.tasks, f.err
}

func timedTask(id string, due time.Time) domain.Task {
	return domain.Task{
		ID:      id,
		OwnerID: "owner",
		Title:   "task " + id,
		DueDate: domain.DateOf(due),
		DueTime: domain.NewClock(due.Hour(), due.Minute(), due.Second()),
	}
}
