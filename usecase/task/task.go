package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/reminder"
	"github.com/fastygo/planner/internal/retry"
	"github.com/fastygo/planner/internal/tasklist"
	"github.com/fastygo/planner/repository"
)

// IntentRunner executes scheduling intents.
type IntentRunner interface {
	Run(ctx context.Context, intents []reminder.Intent) reminder.Report
}

// Outcome is a confirmed mutation together with the scheduling it caused.
type Outcome struct {
	Task    domain.Task       `json:"task"`
	Intents []reminder.Intent `json:"-"`
}

type UseCase struct {
	tasks   repository.TaskRepository
	lists   *tasklist.Registry
	planner reminder.Planner
	runner  IntentRunner
	retry   retry.Policy
	now     func() time.Time
	logger  *zap.Logger
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithRetry overrides the read/delete retry policy.
func WithRetry(p retry.Policy) Option {
	return func(uc *UseCase) { uc.retry = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

func New(
	tasks repository.TaskRepository,
	lists *tasklist.Registry,
	planner reminder.Planner,
	runner IntentRunner,
	logger *zap.Logger,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lists == nil {
		lists = tasklist.NewRegistry()
	}
	uc := &UseCase{
		tasks:   tasks,
		lists:   lists,
		planner: planner,
		runner:  runner,
		retry:   retry.Default,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fetch replaces the owner's collection with the store's list.
func (uc *UseCase) Fetch(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := uc.retry.Do(ctx, uc.logger, "list tasks", func(ctx context.Context) error {
		var err error
		tasks, err = uc.tasks.List(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}
	uc.lists.For(ownerID).ReplaceAll(tasks, uc.clock())
	return tasks, nil
}

// Snapshot returns the owner's collection, fetching it first if it was never synced.
func (uc *UseCase) Snapshot(ctx context.Context, ownerID string, refresh bool) ([]domain.Task, error) {
	list := uc.lists.For(ownerID)
	if refresh || list.LastSync().IsZero() {
		if _, err := uc.Fetch(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	return list.Snapshot(), nil
}

// View filters, sorts and buckets the owner's tasks.
func (uc *UseCase) View(ctx context.Context, ownerID string, q tasklist.Query, refresh bool) (tasklist.View, error) {
	tasks, err := uc.Snapshot(ctx, ownerID, refresh)
	if err != nil {
		return tasklist.View{}, err
	}
	return tasklist.Build(tasks, q, uc.clock()), nil
}

// Create stores a new incomplete task.
func (uc *UseCase) Create(ctx context.Context, ownerID string, draft domain.Task) (Outcome, error) {
	draft.ID = ""
	draft.OwnerID = ownerID
	draft.Completed = false
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return Outcome{}, err
	}

	created, err := uc.tasks.Insert(ctx, &draft)
	if err != nil {
		return Outcome{}, storeError(err)
	}
	uc.lists.For(ownerID).Add(*created)

	return uc.finish(ctx, *created, uc.planner.PlanCreate(*created, uc.clock())), nil
}

// Edit applies patch. A change of the completed flag goes through the same
// completion bookkeeping as Toggle.
func (uc *UseCase) Edit(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (Outcome, error) {
	if err := patch.Validate(); err != nil {
		return Outcome{}, err
	}
	if patch.IsEmpty() {
		return Outcome{}, domain.Invalidf("nothing to update")
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	now := uc.clock()
	prev, known := uc.lists.For(ownerID).Get(id)
	if patch.Completed != nil || (patch.DueTime != nil && patch.DueTime.Valid && patch.DueDate == nil) {
		if !known {
			current, err := uc.lookup(ctx, ownerID, id)
			if err != nil {
				return Outcome{}, err
			}
			prev, known = current, true
		}
	}
	if err := checkDueTime(patch, prev); err != nil {
		return Outcome{}, err
	}
	if patch.Completed != nil {
		patch.CompletedAt, patch.CompletedOnTime = nil, nil
		if *patch.Completed != prev.Completed {
			rest := patch
			rest.Completed = nil
			completion := domain.CompletionPatch(domain.Toggle(rest.Apply(prev), now))
			patch.CompletedAt, patch.CompletedOnTime = completion.CompletedAt, completion.CompletedOnTime
		}
	}

	updated, err := uc.tasks.Update(ctx, ownerID, id, patch)
	if err != nil {
		return Outcome{}, storeError(err)
	}
	uc.lists.For(ownerID).Put(*updated)

	var intents []reminder.Intent
	if known {
		intents = uc.planner.PlanEdit(prev, *updated, now)
	} else {
		intents = []reminder.Intent{uc.planner.Plan(*updated, now)}
	}
	return uc.finish(ctx, *updated, intents), nil
}

// Toggle flips completion of a task from the owner's collection.
func (uc *UseCase) Toggle(ctx context.Context, ownerID, id string) (Outcome, error) {
	current, err := uc.lookup(ctx, ownerID, id)
	if err != nil {
		return Outcome{}, err
	}

	now := uc.clock()
	toggled := domain.Toggle(current, now)
	updated, err := uc.tasks.Update(ctx, ownerID, id, domain.CompletionPatch(toggled))
	if err != nil {
		return Outcome{}, storeError(err)
	}
	uc.lists.For(ownerID).Put(*updated)

	return uc.finish(ctx, *updated, uc.planner.PlanToggle(*updated, now)), nil
}

// Delete removes a task for good. A row that is already gone counts as
// deleted, so a retry after a lost acknowledgement still settles the
// collection and cancels reminders.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) (Outcome, error) {
	err := uc.retry.Do(ctx, uc.logger, "delete task", func(ctx context.Context) error {
		err := uc.tasks.Delete(ctx, ownerID, id)
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return Outcome{}, storeError(err)
	}

	gone := domain.Task{ID: id, OwnerID: ownerID}
	if t, ok := uc.lists.For(ownerID).Get(id); ok {
		gone = t
	}
	uc.lists.For(ownerID).Remove(id)

	return uc.finish(ctx, gone, uc.planner.PlanDelete(gone)), nil
}

// Resync re-plans reminders for every task in the owner's collection, for
// example after the reminder preference changed.
func (uc *UseCase) Resync(ctx context.Context, ownerID string) (reminder.Report, error) {
	tasks, err := uc.Snapshot(ctx, ownerID, false)
	if err != nil {
		return reminder.Report{}, err
	}
	now := uc.clock()
	intents := make([]reminder.Intent, 0, len(tasks))
	for _, t := range tasks {
		intents = append(intents, uc.planner.Plan(t, now))
	}
	if uc.runner == nil {
		return reminder.Report{}, nil
	}
	return uc.runner.Run(context.WithoutCancel(ctx), intents), nil
}

// checkDueTime rejects a due time that would end up without a due date.
func checkDueTime(patch domain.TaskPatch, prev domain.Task) error {
	if patch.DueTime == nil || !patch.DueTime.Valid {
		return nil
	}
	date := prev.DueDate
	if patch.DueDate != nil {
		date = *patch.DueDate
	}
	if !date.Valid {
		return domain.ErrDueTimeWithoutDate
	}
	return nil
}

func (uc *UseCase) lookup(ctx context.Context, ownerID, id string) (domain.Task, error) {
	list := uc.lists.For(ownerID)
	if t, ok := list.Get(id); ok {
		return t, nil
	}
	if _, err := uc.Fetch(ctx, ownerID); err != nil {
		return domain.Task{}, err
	}
	if t, ok := list.Get(id); ok {
		return t, nil
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

// finish runs scheduling for a mutation the store already confirmed. Its
// failures are logged by the runner and never reach the caller.
func (uc *UseCase) finish(ctx context.Context, t domain.Task, intents []reminder.Intent) Outcome {
	if uc.runner != nil && len(intents) > 0 {
		report := uc.runner.Run(context.WithoutCancel(ctx), intents)
		if report.Failed > 0 {
			uc.logger.Warn("reminder scheduling incomplete",
				zap.String("task_id", t.ID),
				zap.Int("failed", report.Failed),
			)
		}
	}
	return Outcome{Task: t, Intents: intents}
}

func (uc *UseCase) clock() time.Time {
	return uc.now().In(uc.planner.Location())
}

// storeError keeps domain errors and classifies everything else as the store
// being unavailable.
func storeError(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrStoreUnavailable.Message, err)
}
