package redis

import (
	"context"
	"fmt"
	"strings"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
)

type deviceRepository struct {
	client *redislib.Client
	prefix string
}

// NewDeviceRepository creates a Redis-backed push token registry.
func NewDeviceRepository(client *redislib.Client, prefix string) repository.DeviceRepository {
	if prefix == "" {
		prefix = "planner:"
	}
	return &deviceRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *deviceRepository) Register(ctx context.Context, ownerID, token string) error {
	token = strings.TrimSpace(token)
	if ownerID == "" || token == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.SAdd(ctx, r.key(ownerID), token).Err()
}

func (r *deviceRepository) Tokens(ctx context.Context, ownerID string) ([]string, error) {
	return r.client.SMembers(ctx, r.key(ownerID)).Result()
}

func (r *deviceRepository) Remove(ctx context.Context, ownerID string, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	members := make([]interface{}, len(tokens))
	for i, t := range tokens {
		members[i] = t
	}
	return r.client.SRem(ctx, r.key(ownerID), members...).Err()
}

func (r *deviceRepository) key(ownerID string) string {
	return fmt.Sprintf("%sdevices:%s", r.prefix, ownerID)
}
