package category

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/retry"
	"github.com/fastygo/planner/repository"
)

type UseCase struct {
	categories repository.CategoryRepository
	retry      retry.Policy
	logger     *zap.Logger
}

func New(categories repository.CategoryRepository, policy retry.Policy, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		categories: categories,
		retry:      policy,
		logger:     logger,
	}
}

func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.Category, error) {
	var categories []domain.Category
	err := uc.retry.Do(ctx, uc.logger, "list categories", func(ctx context.Context) error {
		var err error
		categories, err = uc.categories.List(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}
	return categories, nil
}

// Create stores a category. Duplicate names for the same owner are a conflict.
func (uc *UseCase) Create(ctx context.Context, ownerID string, draft domain.Category) (*domain.Category, error) {
	draft.ID = ""
	draft.OwnerID = ownerID
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.categories.Insert(ctx, &draft)
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

// Delete removes a category. Tasks that referenced it count as uncategorized.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	err := uc.retry.Do(ctx, uc.logger, "delete category", func(ctx context.Context) error {
		return uc.categories.Delete(ctx, ownerID, id)
	})
	if err != nil {
		return storeError(err)
	}
	return nil
}

func storeError(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "category store unavailable", err)
}
