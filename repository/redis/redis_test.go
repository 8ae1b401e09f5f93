package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/planner/domain"
)

// newTestClient connects to PLANNER_TEST_REDIS_URL or skips the test.
func newTestClient(t *testing.T) (*redislib.Client, string) {
	t.Helper()
	url := os.Getenv("PLANNER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PLANNER_TEST_REDIS_URL not set")
	}
	opts, err := redislib.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	client := redislib.NewClient(opts)
	t.Cleanup(func() { client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	return client, "test:" + uuid.NewString() + ":"
}

func TestReminderRepository_Lifecycle(t *testing.T) {
	client, prefix := newTestClient(t)
	repo := NewReminderRepository(client, prefix)
	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond)

	due := domain.Reminder{TaskID: "t1", OwnerID: "u1", Kind: domain.ReminderBefore, Title: "a"}
	later := domain.Reminder{TaskID: "t1", OwnerID: "u1", Kind: domain.ReminderAfter, Title: "a"}
	other := domain.Reminder{TaskID: "t2", OwnerID: "u1", Kind: domain.ReminderAfter, Title: "b"}

	if _, err := repo.ScheduleAt(ctx, now.Add(-time.Second), due); err != nil {
		t.Fatalf("ScheduleAt: %v", err)
	}
	if _, err := repo.ScheduleAt(ctx, now.Add(time.Hour), later); err != nil {
		t.Fatalf("ScheduleAt: %v", err)
	}
	if _, err := repo.ScheduleAt(ctx, now.Add(2*time.Hour), other); err != nil {
		t.Fatalf("ScheduleAt: %v", err)
	}

	all, err := repo.ListScheduled(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListScheduled = %d, %v", len(all), err)
	}

	popped, err := repo.PopDue(ctx, now, 10)
	if err != nil || len(popped) != 1 || popped[0].Kind != domain.ReminderBefore {
		t.Fatalf("PopDue = %+v, %v", popped, err)
	}
	if again, _ := repo.PopDue(ctx, now, 10); len(again) != 0 {
		t.Errorf("second PopDue returned %d reminders", len(again))
	}

	if err := repo.CancelAllFor(ctx, "t1"); err != nil {
		t.Fatalf("CancelAllFor: %v", err)
	}
	left, _ := repo.ListScheduled(ctx)
	if len(left) != 1 || left[0].TaskID != "t2" {
		t.Errorf("after cancel: %+v", left)
	}
	_ = repo.CancelAllFor(ctx, "t2")
}

func TestDeviceRepository(t *testing.T) {
	client, prefix := newTestClient(t)
	repo := NewDeviceRepository(client, prefix)
	ctx := context.Background()

	if err := repo.Register(ctx, "u1", " "); err != domain.ErrInvalidPayload {
		t.Errorf("blank token: %v", err)
	}
	_ = repo.Register(ctx, "u1", "tok-a")
	_ = repo.Register(ctx, "u1", "tok-b")
	_ = repo.Register(ctx, "u1", "tok-a")

	tokens, err := repo.Tokens(ctx, "u1")
	if err != nil || len(tokens) != 2 {
		t.Fatalf("Tokens = %v, %v", tokens, err)
	}
	_ = repo.Remove(ctx, "u1", "tok-a", "tok-b")
	if tokens, _ := repo.Tokens(ctx, "u1"); len(tokens) != 0 {
		t.Errorf("tokens after remove = %v", tokens)
	}
}
