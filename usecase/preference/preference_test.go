package preference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/retry"
)

type memUsers struct {
	users map[string]domain.User
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) Upsert(_ context.Context, u *domain.User) error {
	m.users[u.ID] = *u
	return nil
}

type memDevices struct {
	tokens map[string][]string
}

func (m *memDevices) Register(_ context.Context, ownerID, token string) error {
	m.tokens[ownerID] = append(m.tokens[ownerID], token)
	return nil
}

func (m *memDevices) Tokens(_ context.Context, ownerID string) ([]string, error) {
	return m.tokens[ownerID], nil
}

func (m *memDevices) Remove(_ context.Context, ownerID string, tokens ...string) error {
	delete(m.tokens, ownerID)
	return nil
}

var fast = retry.Policy{Attempts: 1, Initial: time.Millisecond, Multiplier: 1}

func TestGetDefaultsToRemindersOn(t *testing.T) {
	uc := New(&memUsers{users: map[string]domain.User{}}, nil, fast, nil)

	enabled, err := uc.RemindersEnabled(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RemindersEnabled: %v", err)
	}
	if !enabled {
		t.Fatal("owners without a row get reminders on")
	}
}

func TestUpdateFiresHookOnlyOnChange(t *testing.T) {
	users := &memUsers{users: map[string]domain.User{}}
	uc := New(users, nil, fast, nil)
	var calls []string
	uc.OnReminderChange(func(_ context.Context, ownerID string) { calls = append(calls, ownerID) })

	name := "Ada"
	if _, err := uc.Update(context.Background(), "u1", Patch{FullName: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(calls) != 0 {
		t.Fatal("hook must not fire when the preference is unchanged")
	}

	off := false
	user, err := uc.Update(context.Background(), "u1", Patch{RemindersEnabled: &off})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if user.RemindersEnabled || user.FullName != "Ada" {
		t.Fatalf("unexpected user %+v", user)
	}
	if len(calls) != 1 || calls[0] != "u1" {
		t.Fatalf("expected one hook call, got %v", calls)
	}
}

func TestRegisterDevice(t *testing.T) {
	devices := &memDevices{tokens: map[string][]string{}}
	uc := New(&memUsers{users: map[string]domain.User{}}, devices, fast, nil)

	if err := uc.RegisterDevice(context.Background(), "u1", " tok "); err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}
	if got := devices.tokens["u1"]; len(got) != 1 || got[0] != "tok" {
		t.Fatalf("unexpected tokens %v", got)
	}
	if err := uc.RegisterDevice(context.Background(), "u1", ""); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected INVALID, got %v", err)
	}

	disabled := New(&memUsers{users: map[string]domain.User{}}, nil, fast, nil)
	if err := disabled.RegisterDevice(context.Background(), "u1", "tok"); !errors.Is(err, domain.ErrNotifierDisabled) {
		t.Fatalf("expected ErrNotifierDisabled, got %v", err)
	}
}
