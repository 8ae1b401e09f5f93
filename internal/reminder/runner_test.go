package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/planner/domain"
)

func scheduleIntents(now time.Time) []Intent {
	return NewPlanner(time.UTC).PlanCreate(timedTask("t1", deadline), now)
}

func TestRunner_ScheduleIsIdempotent(t *testing.T) {
	delivery := newFakeDelivery()
	ledger := newMemLedger()
	runner := NewRunner(delivery, nil, WithLedger(ledger))
	now := deadline.Add(-10 * time.Minute)

	for i := 0; i < 3; i++ {
		runner.Run(context.Background(), scheduleIntents(now))
	}

	if got := delivery.forTask("t1"); len(got) != 2 {
		t.Fatalf("pending reminders = %d, want 2", len(got))
	}
	record, ok, _ := ledger.Get(context.Background(), "t1")
	if !ok || record.State != StateScheduled || len(record.Handles) != 2 {
		t.Errorf("ledger record = %+v", record)
	}
}

func TestRunner_CancelWithdrawsEverything(t *testing.T) {
	delivery := newFakeDelivery()
	ledger := newMemLedger()
	runner := NewRunner(delivery, nil, WithLedger(ledger))
	now := deadline.Add(-10 * time.Minute)

	runner.Run(context.Background(), scheduleIntents(now))
	report := runner.Run(context.Background(), NewPlanner(time.UTC).PlanDelete(timedTask("t1", deadline)))

	if report.Cancelled != 1 {
		t.Errorf("Cancelled = %d, want 1", report.Cancelled)
	}
	if got := delivery.forTask("t1"); len(got) != 0 {
		t.Errorf("pending reminders = %d, want 0", len(got))
	}
	if record, _, _ := ledger.Get(context.Background(), "t1"); record.State != StateCancelled {
		t.Errorf("state = %s, want cancelled", record.State)
	}
}

func TestRunner_FailuresAreSwallowed(t *testing.T) {
	delivery := newFakeDelivery()
	delivery.failSchedule = true
	ledger := newMemLedger()
	runner := NewRunner(delivery, nil, WithLedger(ledger))

	report := runner.Run(context.Background(), scheduleIntents(deadline.Add(-10*time.Minute)))
	if report.Failed != 2 || report.Scheduled != 0 {
		t.Errorf("report = %+v", report)
	}
	if record, _, _ := ledger.Get(context.Background(), "t1"); record.State != StateUnscheduled {
		t.Errorf("state = %s, want unscheduled", record.State)
	}

	delivery.failCancel = true
	report = runner.Run(context.Background(), scheduleIntents(deadline.Add(-10*time.Minute)))
	if report.Failed != 1 {
		t.Errorf("cancel failure report = %+v", report)
	}
}

func TestRunner_PreferenceGatesScheduling(t *testing.T) {
	tests := []struct {
		name  string
		prefs fakePrefs
	}{
		{name: "disabled", prefs: fakePrefs{disabled: map[string]bool{"owner": true}}},
		{name: "lookup error", prefs: fakePrefs{err: errors.New("db down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delivery := newFakeDelivery()
			runner := NewRunner(delivery, nil, WithPreferences(tt.prefs))
			report := runner.Run(context.Background(), scheduleIntents(deadline.Add(-10*time.Minute)))

			if report.Skipped != 1 || report.Scheduled != 0 {
				t.Errorf("report = %+v", report)
			}
			if got := delivery.forTask("t1"); len(got) != 0 {
				t.Errorf("pending reminders = %d, want 0", len(got))
			}
		})
	}
}

func TestRunner_PreferenceNeverBlocksCancel(t *testing.T) {
	delivery := newFakeDelivery()
	runner := NewRunner(delivery, nil)
	runner.Run(context.Background(), scheduleIntents(deadline.Add(-10*time.Minute)))

	gated := NewRunner(delivery, nil, WithPreferences(fakePrefs{disabled: map[string]bool{"owner": true}}))
	gated.Run(context.Background(), []Intent{{Kind: IntentCancel, TaskID: "t1", OwnerID: "owner"}})

	if got := delivery.forTask("t1"); len(got) != 0 {
		t.Errorf("pending reminders = %d, want 0", len(got))
	}
}

func TestRunner_MarkFired(t *testing.T) {
	delivery := newFakeDelivery()
	ledger := newMemLedger()
	runner := NewRunner(delivery, nil, WithLedger(ledger))
	runner.Run(context.Background(), scheduleIntents(deadline.Add(-10*time.Minute)))

	pending := delivery.forTask("t1")
	runner.MarkFired(context.Background(), pending[0])
	if record, _, _ := ledger.Get(context.Background(), "t1"); record.State != StateScheduled || len(record.Handles) != 1 {
		t.Fatalf("after first fire: %+v", record)
	}

	runner.MarkFired(context.Background(), pending[1])
	if record, _, _ := ledger.Get(context.Background(), "t1"); record.State != StateFired {
		t.Errorf("after second fire: state = %s, want fired", record.State)
	}

	runner.MarkFired(context.Background(), domain.ScheduledReminder{Handle: "unknown", Reminder: domain.Reminder{TaskID: "t1"}})
}
