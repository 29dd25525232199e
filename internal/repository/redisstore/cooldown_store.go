package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"travelmate-be/internal/repository/contract"
)

// CooldownStore backs resend cooldowns with redis TTLs so the window is
// shared across instances.
type CooldownStore struct {
	client *redis.Client
}

func NewCooldownStore(client *redis.Client) contract.CooldownStore {
	return &CooldownStore{client: client}
}

func (s *CooldownStore) Arm(ctx context.Context, key string, d time.Duration) error {
	return s.client.Set(ctx, key, time.Now().Add(d).Unix(), d).Err()
}

func (s *CooldownStore) Remaining(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	// TTL reports -2 for missing keys and -1 for keys without expiry.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
