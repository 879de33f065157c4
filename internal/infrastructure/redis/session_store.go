package redisstore

import (
	"context"
	"errors"
	"time"

	"bluetec-catalog/internal/application"

	"github.com/redis/go-redis/v9"
)

// Store mirrors the cache snapshot under a single key. The key expires
// after TTL, so a stale mirror disappears on its own; restore still checks
// the embedded timestamp.
type Store struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

var _ application.SessionStore = (*Store)(nil)

func New(client *redis.Client, key string, ttl time.Duration) *Store {
	return &Store{Client: client, Key: key, TTL: ttl}
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	b, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, application.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	return s.Client.Set(ctx, s.Key, snapshot, s.TTL).Err()
}

func (s *Store) Delete(ctx context.Context) error {
	return s.Client.Del(ctx, s.Key).Err()
}

func (s *Store) Exists(ctx context.Context) (bool, error) {
	n, err := s.Client.Exists(ctx, s.Key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
