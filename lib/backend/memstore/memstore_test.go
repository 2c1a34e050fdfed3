package memstore

import (
	"context"
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

func TestPutBatchAtomicAcrossCollections(t *testing.T) {
	ctx := context.Background()
	s := New()

	point, err := s.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 1, Value: []byte("a")},
		{Collection: 1, Key: 1, Value: []byte("b")},
	}, false)
	if err != nil {
		t.Fatalf("PutBatch: %v", err)
	}
	if point == 0 {
		t.Fatalf("expected a nonzero commit point")
	}

	v0, ver0, ok0, _ := s.Get(ctx, 0, 1)
	v1, ver1, ok1, _ := s.Get(ctx, 1, 1)
	if !ok0 || string(v0) != "a" || ver0 != point {
		t.Fatalf("collection 0: got %q %d %v", v0, ver0, ok0)
	}
	if !ok1 || string(v1) != "b" || ver1 != point {
		t.Fatalf("collection 1: got %q %d %v", v1, ver1, ok1)
	}
}

func TestScanAscendingOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 9, Value: []byte("i")},
		{Collection: 0, Key: 2, Value: []byte("b")},
		{Collection: 0, Key: 5, Value: []byte("e")},
		{Collection: 0, Key: 11, Value: []byte("k")},
	}, false)
	if err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	keys, _, _, err := s.Scan(ctx, 0, 0, 3)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []int64{2, 5, 9}
	if len(keys) != len(want) {
		t.Fatalf("got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v want %v", keys, want)
		}
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: []byte("a")}}, false)
	s.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: nil}}, false)

	_, _, ok, _ := s.Get(ctx, 0, 1)
	if ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestSnapshotIsolatedFromLaterWrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("a")}}, false)

	snap, err := s.BeginSnapshot(ctx)
	if err != nil {
		t.Fatalf("BeginSnapshot: %v", err)
	}
	defer snap.Release()

	s.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("b")}}, false)

	v, _, ok := snap.Get(0, 10)
	if !ok || string(v) != "a" {
		t.Fatalf("snapshot should observe pre-write value, got %q %v", v, ok)
	}

	live, _, _, _ := s.Get(ctx, 0, 10)
	if string(live) != "b" {
		t.Fatalf("live store should observe the later write, got %q", live)
	}
}

func TestControlClearAndUnknown(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutBatch(ctx, []backend.WriteTask{{Collection: 1, Key: 1, Value: []byte("a")}}, false)

	if _, err := s.Control(ctx, "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, ok, _ := s.Get(ctx, 1, 1); ok {
		t.Fatalf("clear should have removed the value")
	}

	if _, err := s.Control(ctx, "unknown"); err == nil {
		t.Fatalf("expected error for unrecognized control command")
	}
}
