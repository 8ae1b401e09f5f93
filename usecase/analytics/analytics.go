package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/analytics"
	"github.com/fastygo/planner/internal/tasklist"
)

// TaskSource yields the owner's current collection.
type TaskSource interface {
	Snapshot(ctx context.Context, ownerID string, refresh bool) ([]domain.Task, error)
}

// CategorySource resolves category names.
type CategorySource interface {
	List(ctx context.Context, ownerID string) ([]domain.Category, error)
}

// Query narrows the tasks a report covers.
type Query struct {
	Range      tasklist.Range
	CategoryID string
	Refresh    bool
}

// Report is a summary together with the insights derived from it.
// CategoriesResolved is false when category names could not be loaded and
// the category breakdown lumps every task under Uncategorized.
type Report struct {
	Range              tasklist.Range    `json:"range"`
	Summary            analytics.Summary `json:"summary"`
	Insights           []string          `json:"insights"`
	CategoriesResolved bool              `json:"categories_resolved"`
}

type UseCase struct {
	tasks      TaskSource
	categories CategorySource
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

func New(tasks TaskSource, categories CategorySource, loc *time.Location, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		tasks:      tasks,
		categories: categories,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

func (uc *UseCase) Report(ctx context.Context, ownerID string, q Query) (Report, error) {
	tasks, err := uc.tasks.Snapshot(ctx, ownerID, q.Refresh)
	if err != nil {
		return Report{}, err
	}

	resolved := true
	categories, err := uc.categories.List(ctx, ownerID)
	if err != nil {
		// Totals and rates stand; the category breakdown does not.
		resolved = false
		uc.logger.Warn("category lookup failed, reporting without names",
			zap.String("owner_id", ownerID),
			zap.Error(err),
		)
		categories = nil
	}

	now := uc.now().In(uc.loc)
	if q.Range == "" {
		q.Range = tasklist.RangeAll
	}
	scoped := tasklist.Filter(tasks, tasklist.Options{
		CategoryID: q.CategoryID,
		Window:     tasklist.Within(q.Range),
	}, now)

	summary := analytics.Compute(scoped, categories, now)
	return Report{
		Range:              q.Range,
		Summary:            summary,
		Insights:           analytics.Insights(summary),
		CategoriesResolved: resolved,
	}, nil
}
