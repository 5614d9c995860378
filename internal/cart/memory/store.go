// Package memory provides a map-backed cart.Store for tests and local
// development without Redis.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kyluxehaven/storefront/internal/cart"
)

type Store struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	s.mu.RLock()
	raw, ok := s.carts[userID]
	s.mu.RUnlock()

	if !ok {
		return cart.New(userID), nil
	}
	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Save(ctx context.Context, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[c.UserID] = raw
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	return nil
}
