package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:"

// RedisStore persists sessions as JSON values with a Redis TTL equal
// to the session lifetime, so the key-value store itself enforces
// expiry. Lookup can still observe a record in its final moments, so
// callers must check Expired the same way they do for the in-memory
// backend.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing Redis client. The client must have
// been pinged by the caller; this constructor performs no I/O.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Create issues a session for username valid for ttl.
func (r *RedisStore) Create(ctx context.Context, username string, ttl time.Duration) (Session, error) {
	now := time.Now().UTC()
	s := Session{
		ID:        newToken(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+s.ID, payload, ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Lookup fetches and decodes the session value. A missing key means
// either the session never existed or Redis already expired it.
func (r *RedisStore) Lookup(ctx context.Context, id string) (Session, bool, error) {
	payload, err := r.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("lookup session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		// A corrupt value cannot authenticate anyone; drop it.
		_ = r.rdb.Del(ctx, redisKeyPrefix+id).Err()
		return Session{}, false, nil
	}
	return s, true, nil
}

// Delete removes the session key. DEL on a missing key is a no-op,
// which gives the idempotency the gate relies on.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error { return r.rdb.Close() }
