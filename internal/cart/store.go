package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the read-only catalog snapshot the cart copies display fields
// from at add time. The cart never mutates a product.
type Product struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
}

// Line is one row in the cart: a single product and its chosen quantity.
// The line key is the originating product's identifier, so one product maps
// to at most one line.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns unit price times quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store holds the session's selected line items, ordered by insertion, and
// fans state-change notifications out to registered observers. All operations
// are synchronous and total over their inputs: invalid identifiers and
// non-positive quantities are absorbed, never surfaced as errors.
//
// The store is reached from concurrent request goroutines, so a mutex guards
// the lines. Observers fire after the mutation is fully applied and the lock
// released, which lets them re-enter through the read operations.
type Store struct {
	mu    sync.RWMutex
	lines []Line

	subMu      sync.Mutex
	subs       map[int]func()
	nextSubID  int
	onMutation func(op string)
}

// StoreOption customizes a Store at construction time.
type StoreOption func(*Store)

// WithMutationHook registers fn to run once per applied mutation, before
// observers are notified. Used for metrics.
func WithMutationHook(fn func(op string)) StoreOption {
	return func(s *Store) {
		s.onMutation = fn
	}
}

// NewStore returns an empty cart store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{subs: map[int]func(){}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer called synchronously after every mutation.
// The returned function removes the observer.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Add puts one unit of the product in the cart.
func (s *Store) Add(p Product) {
	s.AddItem(p, 1)
}

// AddItem merges the product into the cart. An existing line for the same
// product has its quantity incremented, never duplicated; its display fields
// are refreshed from the passed-in snapshot so a stale price does not stick.
// A missing identifier or non-positive quantity is a no-op.
func (s *Store) AddItem(p Product, quantity int) {
	if p.ID == uuid.Nil || quantity <= 0 {
		return
	}

	s.mu.Lock()
	if idx, ok := s.indexOf(p.ID); ok {
		s.lines[idx].Name = p.Name
		s.lines[idx].UnitPrice = p.UnitPrice
		s.lines[idx].ImageURL = p.ImageURL
		s.lines[idx].Quantity += quantity
	} else {
		s.lines = append(s.lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			ImageURL:  p.ImageURL,
			Quantity:  quantity,
		})
	}
	s.mu.Unlock()

	s.mutated("add")
}

// UpdateQuantity sets the line's quantity to exactly quantity. A value of
// zero or less removes the line, which is how decrement-to-zero works in the
// UI. An unknown identifier is a no-op and does not notify.
func (s *Store) UpdateQuantity(productID uuid.UUID, quantity int) {
	s.mu.Lock()
	idx, ok := s.indexOf(productID)
	if !ok {
		s.mu.Unlock()
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		s.mu.Unlock()
		s.mutated("remove")
		return
	}
	s.lines[idx].Quantity = quantity
	s.mu.Unlock()

	s.mutated("update")
}

// Remove deletes the line for the product if present. Observers are notified
// only when a removal actually occurred, so redundant calls do not trigger
// re-render storms.
func (s *Store) Remove(productID uuid.UUID) {
	s.mu.Lock()
	idx, ok := s.indexOf(productID)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.mu.Unlock()

	s.mutated("remove")
}

// Clear empties the cart unconditionally and notifies.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.mutated("clear")
}

// Lines returns a copy of the line collection in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount returns the sum of all line quantities, total units rather than
// distinct products. This is the number shown in the navigation badge.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total returns the sum over all lines of unit price times quantity. The
// arithmetic is exact decimal; rounding to two places is a presentation
// concern.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

func (s *Store) indexOf(productID uuid.UUID) (int, bool) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i, true
		}
	}
	return 0, false
}

func (s *Store) mutated(op string) {
	if s.onMutation != nil {
		s.onMutation(op)
	}
	s.notify()
}

func (s *Store) notify() {
	s.subMu.Lock()
	observers := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range observers {
		fn()
	}
}
