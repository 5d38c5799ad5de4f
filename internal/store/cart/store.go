// Package cart holds the per-session shopping cart.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"shopswift/internal/domain"
)

// MaxQuantity is the largest quantity a single line can hold. Larger
// requests saturate at it.
const MaxQuantity = 9999

// Listener receives the cart state after every mutation.
type Listener func(domain.CartSnapshot)

// Store is the single source of truth for one session's cart. Items keep
// insertion order and hold at most one entry per product id.
//
// Every operation is total: unknown product ids are ignored, never reported.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	listeners []*subscription
}

type subscription struct {
	fn Listener
}

// New returns an empty cart.
func New() *Store {
	return &Store{}
}

// Add puts quantity units of product into the cart, merging with an existing
// line for the same product id. A quantity below 1 counts as 1 and the line
// never exceeds MaxQuantity.
func (s *Store) Add(product domain.Product, quantity int) {
	quantity = clampQuantity(quantity)
	s.mutate(func() {
		if i := s.indexOf(product.ID); i >= 0 {
			s.items[i].Quantity = clampQuantity(s.items[i].Quantity + quantity)
			return
		}
		s.items = append(s.items, domain.CartItem{Product: product, Quantity: quantity})
	})
}

// UpdateQuantity sets the quantity of a line, capped at MaxQuantity. Zero or
// less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mutate(func() {
		i := s.indexOf(productID)
		if i < 0 {
			return
		}
		if quantity <= 0 {
			s.removeAt(i)
			return
		}
		s.items[i].Quantity = clampQuantity(quantity)
	})
}

// Step moves a line's quantity by delta, staying within 1 and MaxQuantity.
// Removing a line always takes an explicit Remove.
func (s *Store) Step(productID string, delta int) {
	s.mutate(func() {
		i := s.indexOf(productID)
		if i < 0 {
			return
		}
		delta = max(-MaxQuantity, min(delta, MaxQuantity))
		s.items[i].Quantity = clampQuantity(s.items[i].Quantity + delta)
	})
}

// Remove deletes the line for productID if present.
func (s *Store) Remove(productID string) {
	s.mutate(func() {
		if i := s.indexOf(productID); i >= 0 {
			s.removeAt(i)
		}
	})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mutate(func() {
		s.items = nil
	})
}

// Take empties the cart and returns what it held, under one lock, so no
// concurrent Add can land between the read and the clear.
func (s *Store) Take() domain.CartSnapshot {
	var taken domain.CartSnapshot
	s.mutate(func() {
		taken = s.snapshot()
		s.items = nil
	})
	return taken
}

// Items returns a copy of the current lines.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Count is the sum of quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

// Total is the sum of price times quantity, computed from the current lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Snapshot returns items and derived values read under one lock.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners run synchronously, in subscription order, on the
// goroutine that performed the mutation, and must not call back into the store.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l == sub {
					s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// mutate applies fn and notifies listeners while still holding the lock so
// that observers see mutations in the order they happened.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshot()
	for _, l := range s.listeners {
		l.fn(snap)
	}
}

func (s *Store) snapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items: s.copyItems(),
		Count: count(s.items),
		Total: total(s.items),
	}
}

func (s *Store) copyItems() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(productID string) int {
	for i, item := range s.items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

func clampQuantity(q int) int {
	return max(1, min(q, MaxQuantity))
}

func count(items []domain.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func total(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}
