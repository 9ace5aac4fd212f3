package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisConfig controls redis client behavior.
// Keep it config-driven; defaults should be safe and conservative.
type RedisConfig struct {
	Addr string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	PingTimeout time.Duration
}

func (c RedisConfig) withDefaults() RedisConfig {
	out := c
	if out.DialTimeout <= 0 {
		out.DialTimeout = 3 * time.Second
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = 2 * time.Second
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = 2 * time.Second
	}
	if out.PoolSize <= 0 {
		out.PoolSize = 20
	}
	if out.MinIdleConns < 0 {
		out.MinIdleConns = 0
	}
	if out.PoolTimeout <= 0 {
		out.PoolTimeout = 4 * time.Second
	}
	if out.ConnMaxIdleTime <= 0 {
		out.ConnMaxIdleTime = 5 * time.Minute
	}
	if out.ConnMaxLifetime <= 0 {
		out.ConnMaxLifetime = 30 * time.Minute
	}
	if out.PingTimeout <= 0 {
		out.PingTimeout = 2 * time.Second
	}
	return out
}

// OpenRedis initializes a Redis client and validates connectivity via PING.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	cfg = cfg.withDefaults()
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

var sessionUnlockScript = redis.NewScript(`
-- KEYS[1] = lock key
-- ARGV[1] = owner token
-- Only the owner may release; a stale release after TTL expiry is a no-op.
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

// SessionLock is a redis-backed exclusive lock keyed by aggregate identifier,
// used to enforce one edit session per aggregate across console replicas.
//
// Safety properties:
// - Atomic acquire via SET NX with TTL; a crashed replica leaks no lock.
// - Release is owner-checked via Lua, so replica A cannot drop replica B's lock.
type SessionLock struct {
	rdb *redis.Client
	ttl time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

func NewSessionLock(rdb *redis.Client, ttl time.Duration) *SessionLock {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionLock{rdb: rdb, ttl: ttl, tokens: make(map[string]string)}
}

func (l *SessionLock) key(aggregateID string) string {
	return "console:session-lock:" + aggregateID
}

func (l *SessionLock) Acquire(ctx context.Context, aggregateID string) (bool, error) {
	if l.rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if aggregateID == "" {
		return false, fmt.Errorf("aggregate id is required")
	}

	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key(aggregateID), token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	l.mu.Lock()
	l.tokens[aggregateID] = token
	l.mu.Unlock()
	return true, nil
}

func (l *SessionLock) Release(ctx context.Context, aggregateID string) error {
	if l.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}

	l.mu.Lock()
	token, ok := l.tokens[aggregateID]
	delete(l.tokens, aggregateID)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	_, err := sessionUnlockScript.Run(ctx, l.rdb, []string{l.key(aggregateID)}, token).Result()
	return err
}
