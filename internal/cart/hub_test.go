package cart

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestHubAcquireReturnsSameStorePerUser(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()

	first := hub.Acquire(userID)
	second := hub.Acquire(userID)

	if first != second {
		t.Fatal("expected the same store for repeated acquire")
	}
	if hub.Len() != 1 {
		t.Fatalf("expected 1 cart, got %d", hub.Len())
	}
}

func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub(nil)
	alice := hub.Acquire(uuid.New())
	bob := hub.Acquire(uuid.New())

	alice.AddItem(productAt("2.00"), 2)

	if bob.Len() != 0 {
		t.Fatalf("expected bob's cart empty, got %d lines", bob.Len())
	}
	if hub.Len() != 2 {
		t.Fatalf("expected 2 carts, got %d", hub.Len())
	}
}

func TestHubDropDiscardsCart(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()

	store := hub.Acquire(userID)
	store.AddItem(productAt("2.00"), 1)

	hub.Drop(userID)

	if hub.Len() != 0 {
		t.Fatalf("expected no carts after drop, got %d", hub.Len())
	}

	fresh := hub.Acquire(userID)
	if fresh == store {
		t.Fatal("expected a fresh store after drop")
	}
	if fresh.Len() != 0 {
		t.Fatalf("expected fresh cart empty, got %d lines", fresh.Len())
	}
}

func TestHubDropUnknownUserIsNoop(t *testing.T) {
	hub := NewHub(nil)
	hub.Drop(uuid.New())

	if hub.Len() != 0 {
		t.Fatalf("expected no carts, got %d", hub.Len())
	}
}

func TestHubConcurrentAcquire(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()

	stores := make([]*Store, 20)
	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = hub.Acquire(userID)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(stores); i++ {
		if stores[i] != stores[0] {
			t.Fatal("expected all goroutines to receive the same store")
		}
	}
}
