package collection

import (
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

func TestOpenIsIdempotentByName(t *testing.T) {
	r := New()
	id1 := r.Open("users")
	id2 := r.Open("users")
	if id1 != id2 {
		t.Fatalf("opening the same name twice should return the same id: %d != %d", id1, id2)
	}
}

func TestEmptyNameIsDefault(t *testing.T) {
	r := New()
	if id := r.Open(""); id != backend.DefaultCollection {
		t.Fatalf("empty name should resolve to the default collection, got %d", id)
	}
}

func TestListExcludesDefault(t *testing.T) {
	r := New()
	r.Open("users")
	r.Open("orders")

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("expected 2 named collections, got %v", names)
	}
}

func TestRemoveThenReopenGetsFreshID(t *testing.T) {
	r := New()
	id1 := r.Open("users")
	removedID, err := r.Remove("users")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removedID != id1 {
		t.Fatalf("Remove should report the id it dropped")
	}

	id2 := r.Open("users")
	if id2 == id1 {
		t.Fatalf("ids must not be reused after removal, got %d again", id2)
	}
}

func TestRemoveDefaultReportsDefaultID(t *testing.T) {
	r := New()
	id, err := r.Remove("")
	if err != nil {
		t.Fatalf("removing the default collection by empty name should not error: %v", err)
	}
	if id != backend.DefaultCollection {
		t.Fatalf("removing the default collection should report its preserved id %d, got %d", backend.DefaultCollection, id)
	}
}
