package tasklist

import (
	"testing"
	"time"

	"github.com/fastygo/planner/domain"
)

func TestSort_Priority(t *testing.T) {
	tasks := []domain.Task{
		{ID: "none"},
		{ID: "low-dated", Priority: domain.PriorityLow, DueDate: day(2024, 6, 1)},
		{ID: "high-undated", Priority: domain.PriorityHigh},
		{ID: "high-late", Priority: domain.PriorityHigh, DueDate: day(2024, 7, 1)},
		{ID: "medium", Priority: domain.PriorityMedium},
		{ID: "high-early", Priority: domain.PriorityHigh, DueDate: day(2024, 6, 1)},
		{ID: "high-undated-2", Priority: domain.PriorityHigh},
	}

	got := Sort(tasks, SortByPriority)
	want := []string{"high-early", "high-late", "high-undated", "high-undated-2", "medium", "low-dated", "none"}
	if !sameIDs(got, want...) {
		t.Errorf("Sort(priority) = %v, want %v", ids(got), want)
	}
}

func TestSort_PriorityRankAlwaysDescends(t *testing.T) {
	priorities := []domain.Priority{domain.PriorityLow, domain.PriorityNone, domain.PriorityHigh, domain.PriorityMedium}
	var tasks []domain.Task
	for i := 0; i < 12; i++ {
		tasks = append(tasks, domain.Task{ID: string(rune('a' + i)), Priority: priorities[i%len(priorities)]})
	}
	got := Sort(tasks, SortByPriority)
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() < got[i].Priority.Rank() {
			t.Fatalf("rank increases at %d: %v", i, ids(got))
		}
	}
}

func TestSort_DueDateUndatedLast(t *testing.T) {
	tasks := []domain.Task{
		{ID: "u1", Priority: domain.PriorityHigh},
		{ID: "d2", DueDate: day(2024, 6, 20)},
		{ID: "u2"},
		{ID: "d1", DueDate: day(2024, 6, 10)},
		{ID: "d3", DueDate: day(2024, 6, 20)},
	}

	got := Sort(tasks, SortByDueDate)
	want := []string{"d1", "d2", "d3", "u1", "u2"}
	if !sameIDs(got, want...) {
		t.Errorf("Sort(dueDate) = %v, want %v", ids(got), want)
	}
}

func TestSort_Alphabetical(t *testing.T) {
	tasks := []domain.Task{
		{ID: "3", Title: "banana"},
		{ID: "1", Title: "Apple"},
		{ID: "4", Title: "cherry"},
		{ID: "2", Title: "apricot"},
	}

	got := Sort(tasks, SortAlphabetical)
	want := []string{"1", "2", "3", "4"}
	if !sameIDs(got, want...) {
		t.Errorf("Sort(alphabetical) = %v, want %v", ids(got), want)
	}
}

func TestSort_DefaultNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
		{ID: "mid-2", CreatedAt: base.Add(time.Hour)},
	}

	got := Sort(tasks, ParseSortKey("unknown"))
	want := []string{"new", "mid", "mid-2", "old"}
	if !sameIDs(got, want...) {
		t.Errorf("Sort(date) = %v, want %v", ids(got), want)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		{ID: "b", Title: "b"},
		{ID: "a", Title: "a"},
	}
	_ = Sort(tasks, SortAlphabetical)
	if tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Errorf("input reordered: %v", ids(tasks))
	}
}
