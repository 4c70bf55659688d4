package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns the production session store backed by Redis. Entry
// lifetime is enforced through key TTLs, so expiry needs no sweeper.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, token string) (*Data, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &data, nil
}

func (s *redisStore) Save(ctx context.Context, token string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
