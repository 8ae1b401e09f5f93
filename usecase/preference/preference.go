package preference

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/retry"
	"github.com/fastygo/planner/repository"
)

// Patch changes owner preferences. Nil fields are left alone.
type Patch struct {
	FullName         *string
	Email            *string
	RemindersEnabled *bool
}

// ChangeHook runs after the reminder preference of an owner flipped.
type ChangeHook func(ctx context.Context, ownerID string)

type UseCase struct {
	users    repository.UserRepository
	devices  repository.DeviceRepository
	retry    retry.Policy
	onChange ChangeHook
	logger   *zap.Logger
}

func New(users repository.UserRepository, devices repository.DeviceRepository, policy retry.Policy, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:   users,
		devices: devices,
		retry:   policy,
		logger:  logger,
	}
}

// OnReminderChange installs the hook called when reminders get toggled.
func (uc *UseCase) OnReminderChange(hook ChangeHook) {
	uc.onChange = hook
}

// Get returns the owner's preferences. Owners without a stored row get the
// defaults, reminders on.
func (uc *UseCase) Get(ctx context.Context, ownerID string) (*domain.User, error) {
	var user *domain.User
	err := uc.retry.Do(ctx, uc.logger, "get preferences", func(ctx context.Context) error {
		var err error
		user, err = uc.users.GetByID(ctx, ownerID)
		return err
	})
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return &domain.User{ID: ownerID, RemindersEnabled: true}, nil
	case err != nil:
		return nil, storeError(err)
	}
	return user, nil
}

// RemindersEnabled satisfies the reminder runner's preference lookup.
func (uc *UseCase) RemindersEnabled(ctx context.Context, ownerID string) (bool, error) {
	user, err := uc.Get(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return user.RemindersEnabled, nil
}

func (uc *UseCase) Update(ctx context.Context, ownerID string, patch Patch) (*domain.User, error) {
	current, err := uc.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	next := *current
	if patch.FullName != nil {
		next.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.RemindersEnabled != nil {
		next.RemindersEnabled = *patch.RemindersEnabled
	}
	next.UpdatedAt = time.Now()

	if err := uc.users.Upsert(ctx, &next); err != nil {
		return nil, storeError(err)
	}

	if next.RemindersEnabled != current.RemindersEnabled && uc.onChange != nil {
		uc.logger.Info("reminder preference changed",
			zap.String("owner_id", ownerID),
			zap.Bool("reminders_enabled", next.RemindersEnabled),
		)
		uc.onChange(context.WithoutCancel(ctx), ownerID)
	}
	return &next, nil
}

// RegisterDevice records a push token for the owner.
func (uc *UseCase) RegisterDevice(ctx context.Context, ownerID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Invalidf("device token is required")
	}
	if uc.devices == nil {
		return domain.ErrNotifierDisabled
	}
	if err := uc.devices.Register(ctx, ownerID, token); err != nil {
		return storeError(err)
	}
	return nil
}

// UnregisterDevice forgets a push token.
func (uc *UseCase) UnregisterDevice(ctx context.Context, ownerID, token string) error {
	if uc.devices == nil {
		return domain.ErrNotifierDisabled
	}
	if err := uc.devices.Remove(ctx, ownerID, token); err != nil {
		return storeError(err)
	}
	return nil
}

func storeError(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.WrapError(domain.ErrCodeUnavailable, "preference store unavailable", err)
}
