package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/tasklist"
)

type staticTasks []domain.Task

func (s staticTasks) Snapshot(context.Context, string, bool) ([]domain.Task, error) {
	return s, nil
}

type staticCategories struct {
	items []domain.Category
	err   error
}

func (s staticCategories) List(context.Context, string) ([]domain.Category, error) {
	return s.items, s.err
}

func TestReportScopesByRangeAndCategory(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tasks := staticTasks{
		{ID: "old", Title: "old", CategoryID: "work", CreatedAt: now.AddDate(0, -2, 0)},
		{ID: "new", Title: "new", CategoryID: "work", CreatedAt: now.Add(-time.Hour), Priority: domain.PriorityHigh},
		{ID: "home", Title: "home", CategoryID: "home", CreatedAt: now.Add(-time.Hour)},
	}
	uc := New(tasks, staticCategories{items: []domain.Category{{ID: "work", Name: "Work"}}}, time.UTC, nil)
	uc.now = func() time.Time { return now }

	report, err := uc.Report(context.Background(), "u1", Query{Range: tasklist.RangeWeek, CategoryID: "work"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !report.CategoriesResolved {
		t.Fatal("expected resolved categories")
	}
	if report.Summary.Total != 1 {
		t.Fatalf("expected one task in scope, got %d", report.Summary.Total)
	}
	if report.Summary.PriorityDistribution.High != 1 {
		t.Fatalf("unexpected priorities %+v", report.Summary.PriorityDistribution)
	}
	if len(report.Summary.Categories) != 1 || report.Summary.Categories[0].Name != "Work" {
		t.Fatalf("unexpected categories %+v", report.Summary.Categories)
	}
}

func TestReportSurvivesCategoryFailure(t *testing.T) {
	tasks := staticTasks{{ID: "a", Title: "a", CategoryID: "work"}}
	uc := New(tasks, staticCategories{err: errors.New("down")}, time.UTC, nil)

	report, err := uc.Report(context.Background(), "u1", Query{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Range != tasklist.RangeAll {
		t.Fatalf("expected default range all, got %q", report.Range)
	}
	if report.CategoriesResolved {
		t.Fatal("report claims resolved categories after a failed lookup")
	}
	if report.Summary.Total != 1 || report.Summary.Pending != 1 {
		t.Fatalf("totals affected by category failure: %+v", report.Summary)
	}
	if len(report.Summary.Categories) != 1 || report.Summary.Categories[0].Name != domain.UncategorizedName {
		t.Fatalf("expected uncategorized fallback, got %+v", report.Summary.Categories)
	}
	if len(report.Insights) == 0 {
		t.Fatal("expected insights for an unprioritized pending task")
	}
}
