package pebblestore

import (
	"context"
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 1, Value: []byte("a")},
		{Collection: 0, Key: -5, Value: []byte("negative")},
	}, true); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	v, _, ok, err := s.Get(ctx, 0, 1)
	if err != nil || !ok || string(v) != "a" {
		t.Fatalf("Get(1) = %q %v %v", v, ok, err)
	}

	v, _, ok, err = s.Get(ctx, 0, -5)
	if err != nil || !ok || string(v) != "negative" {
		t.Fatalf("Get(-5) = %q %v %v", v, ok, err)
	}
}

func TestScanOrdersNegativeBeforePositive(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	s.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 5, Value: []byte("e")},
		{Collection: 0, Key: -3, Value: []byte("n")},
		{Collection: 0, Key: 0, Value: []byte("z")},
	}, false)

	keys, _, _, err := s.Scan(ctx, 0, -1<<62, 10)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []int64{-3, 0, 5}
	if len(keys) != len(want) {
		t.Fatalf("got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v want %v", keys, want)
		}
	}
}

func TestDropCollectionLeavesOthersIntact(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	s.PutBatch(ctx, []backend.WriteTask{
		{Collection: 1, Key: 1, Value: []byte("a")},
		{Collection: 2, Key: 1, Value: []byte("b")},
	}, false)

	if err := s.DropCollection(ctx, 1); err != nil {
		t.Fatalf("DropCollection: %v", err)
	}

	if _, _, ok, _ := s.Get(ctx, 1, 1); ok {
		t.Fatalf("collection 1 should be empty")
	}
	if v, _, ok, _ := s.Get(ctx, 2, 1); !ok || string(v) != "b" {
		t.Fatalf("collection 2 should be untouched, got %q %v", v, ok)
	}
}

func TestClockPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := Open(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p1, _ := s1.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: []byte("a")}}, true)
	s1.Close()

	s2, err := Open(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	p2, _ := s2.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 2, Value: []byte("b")}}, true)

	if p2 <= p1 {
		t.Fatalf("commit points should keep increasing across reopen: %d then %d", p1, p2)
	}
}
