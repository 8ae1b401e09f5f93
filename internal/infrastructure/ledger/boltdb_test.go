package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/planner/internal/reminder"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "reminders.db"), "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGetList(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if _, found, err := store.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = %v, %v", found, err)
	}

	record := reminder.Record{
		TaskID:    "t1",
		OwnerID:   "u1",
		State:     reminder.StateScheduled,
		Handles:   []string{"h1", "h2"},
		FireAt:    []time.Time{at.Add(55 * time.Minute), at.Add(65 * time.Minute)},
		UpdatedAt: at,
	}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}
	record.TaskID = "t2"
	record.State = reminder.StateCancelled
	record.Handles = nil
	record.FireAt = nil
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := store.Get(ctx, "t1")
	if err != nil || !found {
		t.Fatalf("Get(t1) = %v, %v", found, err)
	}
	if got.State != reminder.StateScheduled || len(got.Handles) != 2 || !got.FireAt[0].Equal(at.Add(55*time.Minute)) {
		t.Errorf("Get(t1) = %+v", got)
	}

	all, err := store.List(ctx)
	if err != nil || len(all) != 2 || all[0].TaskID != "t1" || all[1].TaskID != "t2" {
		t.Errorf("List = %+v, %v", all, err)
	}
	if n, _ := store.Size(); n != 2 {
		t.Errorf("Size = %d, want 2", n)
	}
}

func TestStore_CleanupKeepsScheduled(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := old.Add(48 * time.Hour)

	for _, r := range []reminder.Record{
		{TaskID: "scheduled-old", State: reminder.StateScheduled, UpdatedAt: old},
		{TaskID: "fired-old", State: reminder.StateFired, UpdatedAt: old},
		{TaskID: "cancelled-old", State: reminder.StateCancelled, UpdatedAt: old},
		{TaskID: "fired-recent", State: reminder.StateFired, UpdatedAt: recent},
	} {
		if err := store.Put(ctx, r); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	removed, err := store.Cleanup(old.Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	for _, id := range []string{"scheduled-old", "fired-recent"} {
		if _, found, _ := store.Get(ctx, id); !found {
			t.Errorf("%s should survive cleanup", id)
		}
	}
}

func TestStore_UsableAsRunnerLedger(t *testing.T) {
	var _ reminder.Ledger = openTemp(t)
}
