// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists the ordered line list for a session. A missing or corrupt
// value reads as an empty cart; Load never fails.
type Store interface {
	Load(ctx context.Context, sessionID string) []Line
	Save(ctx context.Context, sessionID string, lines []Line) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisStore stores each session cart as a single JSON blob
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load reads the cart for a session. Transport errors and malformed payloads
// both yield an empty cart.
func (s *RedisStore) Load(ctx context.Context, sessionID string) []Line {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		return nil
	}

	return decodeLines(data)
}

// decodeLines turns a stored payload back into lines; anything that fails to
// decode reads as an empty cart
func decodeLines(data []byte) []Line {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil
	}
	return lines
}

// Save writes the full line list for a session, refreshing its TTL
func (s *RedisStore) Save(ctx context.Context, sessionID string, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Clear removes the session cart
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
