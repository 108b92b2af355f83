package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps JSON-encoded sessions under prefix:kind:id.  Every Save
// refreshes the TTL so an active page does not expire mid-flow.
type RedisStore[T any] struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore[T any](rdb *redis.Client, prefix, kind string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{rdb: rdb, prefix: prefix + ":" + kind + ":", ttl: ttl}
}

func (s *RedisStore[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	bs, err := s.rdb.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return v, ErrSessionNotFound
	}
	if err != nil {
		return v, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(bs, &v); err != nil {
		return v, fmt.Errorf("decode session: %w", err)
	}
	return v, nil
}

func (s *RedisStore[T]) Save(ctx context.Context, id string, v T) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.SetEx(ctx, s.prefix+id, bs, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
