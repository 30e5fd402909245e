package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecencyStore tracks recently notified (candidate, job) pairs as
// expiring keys. It implements services.RecencyStore.
type RedisRecencyStore struct {
	rdb *redis.Client
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// NewRedisRecencyStore returns a recency store backed by the given client.
func NewRedisRecencyStore(rdb *redis.Client) *RedisRecencyStore {
	return &RedisRecencyStore{rdb: rdb}
}

func redisRecencyKey(candidateID, jobID string) string {
	return fmt.Sprintf("match:recent:%s:%s", candidateID, jobID)
}

// MarkMatched records that the pair was notified, expiring after ttl.
func (s *RedisRecencyStore) MarkMatched(ctx context.Context, candidateID, jobID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, redisRecencyKey(candidateID, jobID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("markMatched: %w", err)
	}
	return nil
}

// RecentlyMatched reports whether the pair was notified inside the window.
func (s *RedisRecencyStore) RecentlyMatched(ctx context.Context, candidateID, jobID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, redisRecencyKey(candidateID, jobID)).Result()
	if err != nil {
		return false, fmt.Errorf("recentlyMatched: %w", err)
	}
	return n > 0, nil
}
