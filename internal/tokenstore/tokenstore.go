// Package tokenstore remembers revoked token ids until their expiry so that
// logout takes effect server side.
package tokenstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type Store interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// New returns a redis-backed store when url is set, otherwise memory.
func New(url string) (Store, error) {
	if url == "" {
		return NewMemory(), nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts)), nil
}

// ======================================================
// REDIS
// ======================================================

const keyPrefix = "lumina:revoked:"

type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, keyPrefix+jti, "1", ttl).Err()
}

func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ======================================================
// MEMORY
// ======================================================

type Memory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{revoked: map[string]time.Time{}, now: time.Now}
}

func (m *Memory) Revoke(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	if until.After(now) {
		m.revoked[jti] = until
	}
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[jti]
	return ok && exp.After(m.now()), nil
}
