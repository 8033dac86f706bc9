package cart

import (
	"sync"

	"github.com/amontes/storefront-backend/pkg/metrics"
	"github.com/google/uuid"
)

// Hub owns one Store per authenticated session, keyed by user identifier.
// Carts are created lazily on first use after login and dropped at logout,
// the only place credential lifecycle intersects cart lifecycle. The hub is
// constructed explicitly and injected, never a package singleton, so tests
// can hold their own instance.
type Hub struct {
	mu      sync.RWMutex
	carts   map[uuid.UUID]*Store
	metrics *metrics.CartMetrics
}

// NewHub builds an empty hub. metrics may be nil.
func NewHub(m *metrics.CartMetrics) *Hub {
	return &Hub{
		carts:   map[uuid.UUID]*Store{},
		metrics: m,
	}
}

// Acquire returns the user's cart store, creating it on first use. Every
// store the hub creates gets a metrics observer, so cart activity is counted
// through the same subscription contract the HTTP consumers use.
func (h *Hub) Acquire(userID uuid.UUID) *Store {
	h.mu.RLock()
	store, ok := h.carts[userID]
	h.mu.RUnlock()
	if ok {
		return store
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if store, ok := h.carts[userID]; ok {
		return store
	}

	store = NewStore(WithMutationHook(func(op string) {
		h.metrics.IncMutation(op)
	}))
	store.Subscribe(func() {
		h.metrics.IncNotification()
	})
	h.carts[userID] = store
	h.metrics.CartOpened()
	return store
}

// Drop clears and discards the user's cart. Called at logout; a no-op when
// the user never opened a cart.
func (h *Hub) Drop(userID uuid.UUID) {
	h.mu.Lock()
	store, ok := h.carts[userID]
	if ok {
		delete(h.carts, userID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	store.Clear()
	h.metrics.CartDropped()
}

// Len reports the number of live carts.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.carts)
}
