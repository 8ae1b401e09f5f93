package transport

import (
	"encoding/json"
	"testing"

	"github.com/fastygo/planner/domain"
)

func TestTaskPatchRequestDistinguishesAbsentAndNull(t *testing.T) {
	var req TaskPatchRequest
	if err := json.Unmarshal([]byte(`{"title":"x","due_time":null}`), &req); err != nil {
		t.Fatal(err)
	}
	patch, err := req.ToPatch()
	if err != nil {
		t.Fatalf("ToPatch: %v", err)
	}
	if patch.Title == nil || *patch.Title != "x" {
		t.Fatal("expected title set")
	}
	if patch.DueTime == nil || patch.DueTime.Valid {
		t.Fatalf("expected due time cleared, got %+v", patch.DueTime)
	}
	if patch.DueDate != nil || patch.Completed != nil {
		t.Fatal("absent keys must stay unset")
	}
}

func TestTaskPatchRequestRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"due_date":"10/06/2024"}`,
		`{"due_time":"25:99"}`,
		`{"priority":"urgent"}`,
		`{"completed":null}`,
	}
	for _, body := range cases {
		var req TaskPatchRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatal(err)
		}
		if _, err := req.ToPatch(); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("%s: expected INVALID, got %v", body, err)
		}
	}
}

func TestTaskCreateRequestToTask(t *testing.T) {
	task, err := TaskCreateRequest{Title: "a", DueDate: "2024-06-10", DueTime: "09:30", Priority: "High"}.ToTask()
	if err != nil {
		t.Fatalf("ToTask: %v", err)
	}
	if task.DueDate != domain.NewDate(2024, 6, 10) || task.DueTime != domain.NewClock(9, 30, 0) {
		t.Fatalf("unexpected schedule %v %v", task.DueDate, task.DueTime)
	}
	if task.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected priority %q", task.Priority)
	}
}
