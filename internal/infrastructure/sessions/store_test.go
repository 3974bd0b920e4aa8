package sessions

import (
	"testing"
	"time"
)

func TestAcquire_LazyCreation(t *testing.T) {
	store := NewStore(time.Hour, nil)

	id := store.Acquire("inst_1", "")
	if id == "" {
		t.Fatal("session id not created")
	}

	// Reusing a known id for the same instance returns it unchanged.
	if again := store.Acquire("inst_1", id); again != id {
		t.Fatalf("session id changed on reuse: %q vs %q", again, id)
	}
	if store.Count() != 1 {
		t.Fatalf("count: got %d, want 1", store.Count())
	}
}

func TestAcquire_InstanceMismatch(t *testing.T) {
	store := NewStore(time.Hour, nil)

	id := store.Acquire("inst_1", "")
	other := store.Acquire("inst_2", id)
	if other == id {
		t.Fatal("a session bound to another instance must not be reused")
	}
}

func TestAcquire_UnknownProvidedID(t *testing.T) {
	store := NewStore(time.Hour, nil)
	id := store.Acquire("inst_1", "stale-id-from-last-visit")
	if id == "stale-id-from-last-visit" {
		t.Fatal("unknown session ids must be replaced, not trusted")
	}
}

func TestSweep(t *testing.T) {
	store := NewStore(10*time.Millisecond, nil)
	id := store.Acquire("inst_1", "")

	time.Sleep(25 * time.Millisecond)
	fresh := store.Acquire("inst_2", "")

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("swept: got %d, want 1", removed)
	}
	if _, ok := store.Get(id); ok {
		t.Fatal("idle session should be gone")
	}
	if _, ok := store.Get(fresh); !ok {
		t.Fatal("fresh session should survive")
	}
}
