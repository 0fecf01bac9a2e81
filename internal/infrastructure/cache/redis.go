package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"worker-profile-service/pkg/cache"
	"worker-profile-service/pkg/logger"
)

// DefaultTTL is the wrapper-level fallback applied when a caller passes a
// zero TTL. Domain entries (e.g. worker profiles) pass their own TTL.
const DefaultTTL = 600 * time.Second

// RedisCache implements cache.Cache on go-redis. Its contract is that the
// cache is advisory: every method catches store failures, logs them and
// returns a safe default so a Redis outage never fails the request.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int) cache.Cache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			PoolSize:     10,
			MinIdleConns: 5,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
		ttl: DefaultTTL,
	}
}

// NewRedisCacheWithClient wraps an existing client, used by tests.
func NewRedisCacheWithClient(client *redis.Client) cache.Cache {
	return &RedisCache{client: client, ttl: DefaultTTL}
}

func (r *RedisCache) expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return r.ttl
	}
	return ttl
}

// serialize turns a value into its stored text form. Strings and byte
// slices pass through, everything else is JSON encoded.
func serialize(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to serialize cache value: %w", err)
		}
		return string(data), nil
	}
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Warn("cache get failed", err)
		return false, err
	}

	if s, ok := dest.(*string); ok {
		*s = string(data)
		return true, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("cache entry decode failed", err)
		return false, err
	}
	return true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	serialized, err := serialize(value)
	if err != nil {
		logger.Warn("cache set skipped", err)
		return err
	}

	if err := r.client.Set(ctx, key, serialized, r.expiry(ttl)).Err(); err != nil {
		logger.Warn("cache set failed", err)
		return err
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache delete failed", err)
		return err
	}
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.Warn("cache exists failed", err)
		return false, err
	}
	return n == 1, nil
}

func (r *RedisCache) MSet(ctx context.Context, entries map[string]interface{}, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	expiry := r.expiry(ttl)
	for key, value := range entries {
		serialized, err := serialize(value)
		if err != nil {
			logger.Warn("cache mset skipped entry", err)
			continue
		}
		pipe.Set(ctx, key, serialized, expiry)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("cache mset failed", err)
		return err
	}
	return nil
}

func (r *RedisCache) MGet(ctx context.Context, keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Warn("cache mget failed", err)
		return values, err
	}

	for i, raw := range results {
		if s, ok := raw.(string); ok {
			values[i] = s
		}
	}
	return values, nil
}

func (r *RedisCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	serialized, err := serialize(value)
	if err != nil {
		logger.Warn("cache setnx skipped", err)
		return false, err
	}

	set, err := r.client.SetNX(ctx, key, serialized, r.expiry(ttl)).Result()
	if err != nil {
		logger.Warn("cache setnx failed", err)
		return false, err
	}
	return set, nil
}

func (r *RedisCache) Increment(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("cache incr failed", err)
		return 0, err
	}
	return n, nil
}

func (r *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		logger.Warn("cache ttl failed", err)
		return -2 * time.Second, err
	}
	return ttl, nil
}

func (r *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		logger.Warn("cache expire failed", err)
		return err
	}
	return nil
}

// DeletePattern scans for keys matching a glob pattern and deletes them in
// batches. SCAN is used instead of KEYS to avoid blocking the store.
func (r *RedisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				logger.Warn("cache pattern delete failed", err)
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache pattern scan failed", err)
		return err
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("cache pattern delete failed", err)
			return err
		}
	}
	return nil
}

// GetStats parses a handful of named counters out of the INFO text block.
func (r *RedisCache) GetStats(ctx context.Context) (cache.Stats, error) {
	var stats cache.Stats

	info, err := r.client.Info(ctx, "stats", "memory").Result()
	if err != nil {
		logger.Warn("cache stats failed", err)
		return stats, err
	}

	fields := map[string]string{}
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if key, value, found := strings.Cut(line, ":"); found {
			fields[key] = value
		}
	}

	stats.TotalConnectionsReceived = fields["total_connections_received"]
	stats.TotalCommandsProcessed = fields["total_commands_processed"]
	stats.InstantaneousOpsPerSec = fields["instantaneous_ops_per_sec"]
	stats.KeyspaceHits = fields["keyspace_hits"]
	stats.KeyspaceMisses = fields["keyspace_misses"]
	stats.UsedMemory = fields["used_memory"]
	stats.UsedMemoryPeak = fields["used_memory_peak"]

	return stats, nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client. Not part of the Cache interface;
// the container calls it during shutdown.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
