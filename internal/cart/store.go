package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickmart/backend/internal/catalog"
)

// Store tracks the live carts by ID. Abandoned carts are cancelled by the
// reaper so their reserved stock returns to the catalog.
type Store struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	carts   map[string]*Cart
}

// NewStore creates an empty cart store backed by the catalog.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		catalog: cat,
		carts:   make(map[string]*Cart),
	}
}

// Create makes a new empty cart with a generated ID.
func (s *Store) Create() *Cart {
	c := New(uuid.New().String(), s.catalog)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.ID()] = c
	return c
}

// Get returns the cart with the given ID, if it exists.
func (s *Store) Get(id string) (*Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	return c, ok
}

// Delete removes the cart from the store without touching stock. Callers
// must Cancel or CompleteCheckout the cart first.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// ReapIdle cancels and removes carts that have been idle longer than ttl,
// returning their reserved stock to the catalog. Returns the number of
// carts reaped.
func (s *Store) ReapIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	var stale []*Cart
	for id, c := range s.carts {
		if c.LastActive().Before(cutoff) {
			stale = append(stale, c)
			delete(s.carts, id)
		}
	}
	s.mu.Unlock()

	for _, c := range stale {
		c.Cancel()
	}
	return len(stale)
}

// StartReaper runs ReapIdle on the given interval until ctx is cancelled.
func (s *Store) StartReaper(ctx context.Context, interval, ttl time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.ReapIdle(ttl); n > 0 {
				log.Info("reaped idle carts", "count", n, "ttl", ttl.String())
			}
		}
	}
}
