package cart

import (
	"context"
	"log"
	"sync"
	"time"
)

type entry struct {
	cart    Cart
	touched time.Time
}

// Store keeps one cart per guest id.
type Store struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*entry),
		now:   time.Now,
	}
}

// Update runs fn on the guest's cart while holding the store lock,
// creating the cart on first use.
func (s *Store) Update(guestID string, fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[guestID]
	if !ok {
		e = &entry{}
		s.carts[guestID] = e
	}
	e.touched = s.now()
	return fn(&e.cart)
}

// Snapshot returns a copy of the guest's lines without creating a cart.
func (s *Store) Snapshot(guestID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[guestID]
	if !ok {
		return []Item{}
	}
	return e.cart.Items()
}

// Take removes the guest's cart and returns its lines. A second Take
// for the same guest sees an empty cart.
func (s *Store) Take(guestID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[guestID]
	if !ok {
		return []Item{}
	}
	delete(s.carts, guestID)
	return e.cart.Items()
}

// Restore puts taken lines back in front of anything added since. Lines
// for a product already in the cart are dropped.
func (s *Store) Restore(guestID string, items []Item) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[guestID]
	if !ok {
		e = &entry{}
		s.carts[guestID] = e
	}
	e.touched = s.now()

	merged := make([]Item, 0, len(items)+len(e.cart.items))
	merged = append(merged, items...)
	for _, it := range e.cart.items {
		if (&Cart{items: items}).index(it.ProductName) < 0 {
			merged = append(merged, it)
		}
	}
	e.cart.items = merged
}

func (s *Store) Drop(guestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, guestID)
}

// Sweep removes carts idle for longer than maxIdle and returns how many
// were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, e := range s.carts {
		if e.touched.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// RunJanitor sweeps idle carts every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				log.Printf("🗑️ Removed %d idle carts", n)
			}
		}
	}
}
