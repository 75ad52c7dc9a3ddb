package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisSlot stores the value under one redis key with no expiration.
type redisSlot struct {
	redisClient *redis.Client
	key         string
}

func NewRedisSlot(redisClient *redis.Client, key string) Slot {
	return &redisSlot{
		redisClient: redisClient,
		key:         key,
	}
}

func (s *redisSlot) Get(ctx context.Context) ([]byte, bool, error) {
	val, err := s.redisClient.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return val, true, nil
}

func (s *redisSlot) Set(ctx context.Context, value []byte) error {
	if err := s.redisClient.Set(ctx, s.key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}
