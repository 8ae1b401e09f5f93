package repository

import (
	"context"

	"github.com/fastygo/planner/domain"
)

// UserRepository stores owner preferences. GetByID reports unknown owners
// with domain.ErrUserNotFound.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
