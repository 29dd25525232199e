package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"travelmate-be/internal/repository/contract"
)

// CooldownStore keeps resend cooldowns in process memory. Suitable for a
// single instance deployment; multi instance setups should use the redis
// provider instead.
type CooldownStore struct {
	cache *gocache.Cache
}

func NewCooldownStore() contract.CooldownStore {
	return &CooldownStore{
		cache: gocache.New(gocache.NoExpiration, 5*time.Minute),
	}
}

func (s *CooldownStore) Arm(ctx context.Context, key string, d time.Duration) error {
	s.cache.Set(key, time.Now().Add(d), d)
	return nil
}

func (s *CooldownStore) Remaining(ctx context.Context, key string) (time.Duration, error) {
	v, found := s.cache.Get(key)
	if !found {
		return 0, nil
	}
	until, ok := v.(time.Time)
	if !ok {
		return 0, nil
	}
	remaining := time.Until(until)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
