package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/planner/domain"
)

func TestDateClockConversions(t *testing.T) {
	d := domain.NewDate(2024, time.February, 29)
	if got := fromPgDate(pgDate(d)); !got.Equal(d) {
		t.Errorf("date round trip = %v", got)
	}
	if pgDate(domain.Date{}).Valid || fromPgDate(pgDate(domain.Date{})).Valid {
		t.Error("absent date should stay absent")
	}

	c := domain.NewClock(23, 59, 59)
	if got := fromPgTime(pgTime(c)); got != c {
		t.Errorf("clock round trip = %v", got)
	}
	if pgTime(domain.Clock{}).Valid {
		t.Error("absent clock should encode as NULL")
	}
}

func TestPatchAssignments(t *testing.T) {
	title := "  trimmed "
	noDate := domain.Date{}
	clock := domain.NewClock(9, 0, 0)
	reopen := false
	done := true
	now := time.Now()
	at := &now

	tests := []struct {
		name  string
		patch domain.TaskPatch
		want  []string
	}{
		{name: "empty", patch: domain.TaskPatch{}, want: nil},
		{
			name:  "title",
			patch: domain.TaskPatch{Title: &title},
			want:  []string{"title = $3"},
		},
		{
			name:  "clearing the date clears the time",
			patch: domain.TaskPatch{DueDate: &noDate, DueTime: &clock},
			want:  []string{"due_date = $3", "due_time = $4"},
		},
		{
			name:  "reopen clears completion fields",
			patch: domain.TaskPatch{Completed: &reopen, CompletedAt: &at},
			want:  []string{"completed = $3", "completed_at = $4", "completed_on_time = $5"},
		},
		{
			name:  "complete",
			patch: domain.TaskPatch{Completed: &done, CompletedAt: &at},
			want:  []string{"completed = $3", "completed_at = $4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, args := patchAssignments(tt.patch)
			if strings.Join(sets, ", ") != strings.Join(tt.want, ", ") {
				t.Errorf("sets = %v, want %v", sets, tt.want)
			}
			if len(args) != len(sets) {
				t.Errorf("%d args for %d assignments", len(args), len(sets))
			}
		})
	}

	sets, args := patchAssignments(domain.TaskPatch{Title: &title})
	if len(sets) != 1 || args[0] != "trimmed" {
		t.Errorf("title not trimmed: %v", args)
	}
}

func TestConstraintViolations(t *testing.T) {
	check := fmt.Errorf("update task: %w", &pgconn.PgError{Code: "23514", ConstraintName: "tasks_check"})
	unique := &pgconn.PgError{Code: "23505"}

	if !isCheckViolation(check) || isUniqueViolation(check) {
		t.Errorf("check violation misclassified")
	}
	if !isUniqueViolation(unique) || isCheckViolation(unique) {
		t.Errorf("unique violation misclassified")
	}
	if isCheckViolation(errors.New("connection reset")) {
		t.Errorf("plain error treated as check violation")
	}
}

type failingRow struct{ err error }

func (r failingRow) Scan(...interface{}) error { return r.err }

func TestScanTaskMapsCheckViolation(t *testing.T) {
	_, err := scanTask(failingRow{err: &pgconn.PgError{Code: "23514"}})
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}

	_, err = scanTask(failingRow{err: errors.New("connection reset")})
	if domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("transport error mapped to INVALID: %v", err)
	}
}
