package cache

import (
	"context"
	"time"
)

// Stats is a subset of counters parsed from the store's diagnostic output.
type Stats struct {
	TotalConnectionsReceived string `json:"total_connections_received"`
	TotalCommandsProcessed   string `json:"total_commands_processed"`
	InstantaneousOpsPerSec   string `json:"instantaneous_ops_per_sec"`
	KeyspaceHits             string `json:"keyspace_hits"`
	KeyspaceMisses           string `json:"keyspace_misses"`
	UsedMemory               string `json:"used_memory"`
	UsedMemoryPeak           string `json:"used_memory_peak"`
}

// Cache defines the contract for the cache layer. The implementation must
// never fail the caller's request because the store is unavailable: every
// method logs store-level failures and returns a safe default instead.
//
// Get returns (found, err). err is non-nil only when the store was
// unreachable or the payload could not be decoded; callers are expected to
// treat both as a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key. A zero ttl uses the wrapper default.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Exists(ctx context.Context, key string) (bool, error)

	// MSet stores multiple entries in one pipelined round trip, all with
	// the same ttl (zero for the wrapper default).
	MSet(ctx context.Context, entries map[string]interface{}, ttl time.Duration) error

	// MGet returns raw values for keys; missing keys yield empty strings.
	MGet(ctx context.Context, keys ...string) ([]string, error)

	// SetNX stores value only if key is absent. Returns true when set.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	Increment(ctx context.Context, key string) (int64, error)

	TTL(ctx context.Context, key string) (time.Duration, error)

	Expire(ctx context.Context, key string, ttl time.Duration) error

	// DeletePattern removes every key matching a glob pattern, e.g. "worker:*".
	DeletePattern(ctx context.Context, pattern string) error

	// GetStats parses counters out of the store's INFO block.
	GetStats(ctx context.Context) (Stats, error)

	Ping(ctx context.Context) error
}
