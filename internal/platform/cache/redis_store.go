package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRedisPrefix = "goals-api:"
	scanBatchSize      = 200
)

// RedisStore shares cached payloads between replicas. Expiry is delegated
// to Redis key TTLs, so Status never reports expired entries.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *logging.Logger
	flight singleflight.Group
}

func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration, logger *logging.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreFromClient(client, ttl, logger), nil
}

func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, logger *logging.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) TTL() time.Duration {
	return s.ttl
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "redis cache get failed, treating as miss", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) {
	if key == "" {
		return
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis cache set failed", "key", key, "error", err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	removed, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache delete failed", "key", key, "error", err)
		return false
	}
	return removed > 0
}

func (s *RedisStore) Clear(ctx context.Context) int {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache scan failed", "error", err)
		return 0
	}

	total := 0
	for start := 0; start < len(keys); start += scanBatchSize {
		end := start + scanBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		removed, err := s.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			s.logger.WarnContext(ctx, "redis cache clear batch failed", "batch_size", end-start, "error", err)
			continue
		}
		total += int(removed)
	}
	return total
}

func (s *RedisStore) Status(ctx context.Context) []EntryStatus {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "redis cache scan failed", "error", err)
		return []EntryStatus{}
	}

	pipe := s.client.Pipeline()
	ttls := make([]*redis.DurationCmd, 0, len(keys))
	for _, key := range keys {
		ttls = append(ttls, pipe.TTL(ctx, key))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "redis cache ttl lookup failed", "error", err)
	}

	out := make([]EntryStatus, 0, len(keys))
	for i, key := range keys {
		remaining := ttls[i].Val()
		if remaining < 0 {
			// -2: vanished since the scan; -1: no expiry set.
			if remaining == -2 {
				continue
			}
			remaining = s.ttl
		}
		out = append(out, redisEntryStatus(strings.TrimPrefix(key, s.prefix), s.ttl, remaining))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (s *RedisStore) GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, bool, error) {
	return getOrLoad(ctx, s, &s.flight, key, loader)
}

func (s *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		out    []string
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}

func redisEntryStatus(key string, ttl, remaining time.Duration) EntryStatus {
	age := ttl - remaining
	if age < 0 {
		age = 0
	}
	return EntryStatus{
		Key:              key,
		AgeSeconds:       age.Seconds(),
		ExpiresInSeconds: remaining.Seconds(),
		IsExpired:        remaining <= 0,
	}
}
