package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

// reminderRepository keeps pending reminders in a sorted set scored by fire
// time, with one JSON payload per handle and a handle set per task.
type reminderRepository struct {
	client *redislib.Client
	prefix string
}

// NewReminderRepository creates a Redis-backed reminder queue.
func NewReminderRepository(client *redislib.Client, prefix string) repository.ReminderRepository {
	if prefix == "" {
		prefix = "planner:"
	}
	return &reminderRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *reminderRepository) ScheduleAt(ctx context.Context, at time.Time, reminder domain.Reminder) (string, error) {
	if reminder.TaskID == "" {
		return "", domain.ErrInvalidPayload
	}
	reminder.FireAt = at
	scheduled := domain.ScheduledReminder{Handle: uuid.NewString(), Reminder: reminder}
	payload, err := json.Marshal(scheduled)
	if err != nil {
		return "", err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.Set(ctx, r.payloadKey(scheduled.Handle), payload, 0)
		pipe.ZAdd(ctx, r.dueKey(), redislib.Z{Score: score(at), Member: scheduled.Handle})
		pipe.SAdd(ctx, r.taskKey(reminder.TaskID), scheduled.Handle)
		return nil
	})
	if err != nil {
		return "", err
	}
	return scheduled.Handle, nil
}

func (r *reminderRepository) CancelAllFor(ctx context.Context, taskID string) error {
	handles, err := r.client.SMembers(ctx, r.taskKey(taskID)).Result()
	if err != nil {
		return err
	}
	if len(handles) == 0 {
		return nil
	}

	members := make([]interface{}, len(handles))
	keys := make([]string, 0, len(handles)+1)
	for i, h := range handles {
		members[i] = h
		keys = append(keys, r.payloadKey(h))
	}
	keys = append(keys, r.taskKey(taskID))

	_, err = r.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.ZRem(ctx, r.dueKey(), members...)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

func (r *reminderRepository) ListScheduled(ctx context.Context) ([]domain.ScheduledReminder, error) {
	handles, err := r.client.ZRange(ctx, r.dueKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return r.load(ctx, handles)
}

// PopDue claims due handles one by one with ZREM so concurrent dispatchers
// never deliver the same reminder twice.
func (r *reminderRepository) PopDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledReminder, error) {
	if limit <= 0 {
		limit = 100
	}
	handles, err := r.client.ZRangeByScore(ctx, r.dueKey(), &redislib.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatFloat(score(now), 'f', 0, 64),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, err
	}

	claimed := make([]string, 0, len(handles))
	for _, h := range handles {
		n, err := r.client.ZRem(ctx, r.dueKey(), h).Result()
		if err != nil {
			return nil, err
		}
		if n == 1 {
			claimed = append(claimed, h)
		}
	}

	reminders, err := r.load(ctx, claimed)
	if err != nil {
		return nil, err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		for _, rem := range reminders {
			pipe.Del(ctx, r.payloadKey(rem.Handle))
			pipe.SRem(ctx, r.taskKey(rem.TaskID), rem.Handle)
		}
		return nil
	})
	return reminders, err
}

func (r *reminderRepository) load(ctx context.Context, handles []string) ([]domain.ScheduledReminder, error) {
	if len(handles) == 0 {
		return []domain.ScheduledReminder{}, nil
	}
	keys := make([]string, len(handles))
	for i, h := range handles {
		keys[i] = r.payloadKey(h)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.ScheduledReminder, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rem domain.ScheduledReminder
		if err := json.Unmarshal([]byte(raw), &rem); err != nil {
			continue
		}
		out = append(out, rem)
	}
	return out, nil
}

func (r *reminderRepository) dueKey() string {
	return r.prefix + "reminders:due"
}

func (r *reminderRepository) payloadKey(handle string) string {
	return fmt.Sprintf("%sreminder:%s", r.prefix, handle)
}

func (r *reminderRepository) taskKey(taskID string) string {
	return fmt.Sprintf("%sreminders:task:%s", r.prefix, taskID)
}

func score(t time.Time) float64 {
	return float64(t.UnixMilli())
}
