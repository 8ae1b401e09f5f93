package repository

import (
	"context"
	"time"

	"github.com/fastygo/planner/domain"
)

// TaskRepository is the persistent store collaborator for tasks.
type TaskRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Insert(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
	// ListTimedPending returns incomplete tasks of every owner that carry both a
	// due date and a due time with the due date inside [from, to].
	ListTimedPending(ctx context.Context, from, to time.Time) ([]domain.Task, error)
}

// CategoryRepository stores an owner's categories.
type CategoryRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Category, error)
	Insert(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, ownerID, id string) error
}
