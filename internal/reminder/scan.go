package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
)

// RescanWindow is how far around now the safety net looks for deadlines.
const RescanWindow = 6 * time.Minute

// ScanResult is what a periodic trigger reports back.
type ScanResult string

const (
	ResultNewData ScanResult = "new_data"
	ResultNoData  ScanResult = "no_data"
	ResultFailed  ScanResult = "failed"
)

// DueForRescan keeps incomplete tasks with a due date and time whose deadline
// lies within window of now, in input order.
func DueForRescan(tasks []domain.Task, now time.Time, window time.Duration, loc *time.Location) []domain.Task {
	out := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		deadline, ok := task.ReminderAt(loc)
		if !ok {
			continue
		}
		if delta := deadline.Sub(now); delta >= -window && delta <= window {
			out = append(out, task)
		}
	}
	return out
}

// TaskSource lists the candidates of a rescan.
type TaskSource interface {
	ListTimedPending(ctx context.Context, from, to time.Time) ([]domain.Task, error)
}

// Scanner re-applies scheduling to tasks close to their deadline.
type Scanner struct {
	tasks   TaskSource
	planner Planner
	runner  *Runner
	window  time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewScanner(tasks TaskSource, planner Planner, runner *Runner, window time.Duration, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = RescanWindow
	}
	return &Scanner{
		tasks:   tasks,
		planner: planner,
		runner:  runner,
		window:  window,
		now:     time.Now,
		logger:  logger,
	}
}

// Scan runs one safety-net pass. It is safe to run concurrently with
// mutations since every reschedule cancels first.
func (s *Scanner) Scan(ctx context.Context) ScanResult {
	now := s.now().In(s.planner.Location())
	candidates, err := s.tasks.ListTimedPending(ctx, now.Add(-s.window), now.Add(s.window))
	if err != nil {
		s.logger.Error("reminder rescan failed to list tasks", zap.Error(err))
		return ResultFailed
	}

	due := DueForRescan(candidates, now, s.window, s.planner.Location())
	if len(due) == 0 {
		return ResultNoData
	}

	intents := make([]Intent, 0, len(due))
	for _, task := range due {
		intents = append(intents, s.planner.Plan(task, now))
	}
	report := s.runner.Run(ctx, intents)
	s.logger.Info("reminder rescan finished",
		zap.Int("tasks", len(due)),
		zap.Int("scheduled", report.Scheduled),
		zap.Int("failed", report.Failed),
	)
	if report.Failed > 0 && report.Scheduled == 0 {
		return ResultFailed
	}
	return ResultNewData
}
