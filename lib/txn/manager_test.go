package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/backend/memstore"
)

func TestReadYourWrites(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memstore.New())

	h, err := m.Begin(ctx, nil, 0, Options{})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := m.Write(ctx, h, 0, 1, []byte("v")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, found, err := m.Read(ctx, h, 0, 1, false)
	if err != nil || !found || string(v) != "v" {
		t.Fatalf("Read = %q %v %v", v, found, err)
	}
}

func TestOCCConflictOnTrackedRead(t *testing.T) {
	ctx := context.Background()
	be := memstore.New()
	m := NewManager(be)

	t1, _ := m.Begin(ctx, nil, 0, Options{})
	if _, found, err := m.Read(ctx, t1, 0, 5, true); err != nil || found {
		t.Fatalf("initial read of 5 should be missing: %v %v", found, err)
	}

	t2, _ := m.Begin(ctx, nil, 0, Options{})
	if err := m.Write(ctx, t2, 0, 5, []byte("v")); err != nil {
		t.Fatalf("Write t2: %v", err)
	}
	if err := m.Commit(ctx, t2, false); err != nil {
		t.Fatalf("Commit t2: %v", err)
	}

	err := m.Commit(ctx, t1, false)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if m.State(t1) != StateConflicted {
		t.Fatalf("t1 should be conflicted, got %s", m.State(t1))
	}
}

func TestSnapshotStableAcrossConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	be := memstore.New()
	m := NewManager(be)

	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("a")}}, false)

	snapTxn, _ := m.Begin(ctx, nil, 0, Options{Snapshot: true})

	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("b")}}, false)

	v, found, err := m.Read(ctx, snapTxn, 0, 10, false)
	if err != nil || !found || string(v) != "a" {
		t.Fatalf("snapshot read should still see original value, got %q %v %v", v, found, err)
	}
}

func TestFreedHandleIsGoneAndRejectsWrites(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memstore.New())

	h, _ := m.Begin(ctx, nil, 0, Options{})
	m.Write(ctx, h, 0, 1, []byte("v"))
	m.Free(h)

	if m.State(h) != StateGone {
		t.Fatalf("expected gone state after free")
	}
	if err := m.Write(ctx, h, 0, 1, []byte("v2")); err == nil {
		t.Fatalf("write on freed handle should fail")
	}
}

func TestCommitTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	m := NewManager(memstore.New())

	h, _ := m.Begin(ctx, nil, 0, Options{})
	m.Write(ctx, h, 0, 1, []byte("v"))
	if err := m.Commit(ctx, h, false); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if err := m.Commit(ctx, h, false); err == nil {
		t.Fatalf("second commit on an already-committed transaction should fail")
	}
}
