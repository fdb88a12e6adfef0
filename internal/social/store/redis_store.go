package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "kinkeep"
	defaultCountTTL  = 10 * time.Minute
)

type RedisCountStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ CountStore = (*RedisCountStore)(nil)

// NewRedisCountStore connects to redis and verifies the connection. prefix
// namespaces the keys; ttl bounds staleness of cached counts. Zero values
// fall back to the package defaults.
func NewRedisCountStore(addr, password string, db int, prefix string, ttl time.Duration) (*RedisCountStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix, ttl = normalizeCacheOptions(prefix, ttl)
	return &RedisCountStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func normalizeCacheOptions(prefix string, ttl time.Duration) (string, time.Duration) {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultCountTTL
	}
	return prefix, ttl
}

func (s *RedisCountStore) GetFollowersCount(ctx context.Context, userID uint) (int64, bool, error) {
	count, err := s.client.Get(ctx, s.followersKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (s *RedisCountStore) SetFollowersCount(ctx context.Context, userID uint, count int64) error {
	return s.client.Set(ctx, s.followersKey(userID), count, s.ttl).Err()
}

func (s *RedisCountStore) InvalidateFollowersCount(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, s.followersKey(userID)).Err()
}

func (s *RedisCountStore) Close() error {
	return s.client.Close()
}

func (s *RedisCountStore) followersKey(userID uint) string {
	return fmt.Sprintf("%s:social:followers:%d", s.prefix, userID)
}
