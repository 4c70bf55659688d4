package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore returns an in-process session store. Used in development and
// tests; sessions do not survive a restart.
func NewMemoryStore(cleanupInterval time.Duration) Store {
	return &memoryStore{cache: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *memoryStore) Get(_ context.Context, token string) (*Data, error) {
	v, found := s.cache.Get(token)
	if !found {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the stored value without Save.
	data := *(v.(*Data))
	return &data, nil
}

func (s *memoryStore) Save(_ context.Context, token string, data *Data, ttl time.Duration) error {
	stored := *data
	s.cache.Set(token, &stored, ttl)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
