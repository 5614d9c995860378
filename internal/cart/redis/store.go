// Package redis provides a Redis-backed cart.Store. Carts are serialised as
// JSON under one key per user with a sliding TTL, so abandoned carts clean
// themselves up.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kyluxehaven/storefront/internal/cart"
)

// DefaultTTL is how long an untouched cart survives.
const DefaultTTL = 7 * 24 * time.Hour

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to Redis at addr. A zero ttl falls back to DefaultTTL.
func NewStore(addr string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func key(userID string) string {
	return fmt.Sprintf("storefront:cart:%s", userID)
}

// Get loads the user's cart. A missing key yields a fresh empty cart.
func (s *Store) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	raw, err := s.client.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return cart.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart: redis get: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("cart: decode stored cart: %w", err)
	}
	return &c, nil
}

// Save writes the cart back and refreshes its TTL.
func (s *Store) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: encode cart: %w", err)
	}
	if err := s.client.Set(ctx, key(c.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart: redis set: %w", err)
	}
	return nil
}

// Delete drops the user's cart, e.g. after checkout.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("cart: redis del: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
