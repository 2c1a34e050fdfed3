package enginetest

import (
	"context"
	"testing"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

// BackendFactory creates a fresh, empty backend instance for one subtest.
type BackendFactory func() backend.Backend

// RunBackendTests runs the full capability-contract suite against a
// backend implementation.
func RunBackendTests(t *testing.T, name string, factory BackendFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, factory()) })
		t.Run("DeleteRemovesKey", func(t *testing.T) { testDelete(t, factory()) })
		t.Run("EmptyVsMissing", func(t *testing.T) { testEmptyVsMissing(t, factory()) })
		t.Run("BatchAtomicity", func(t *testing.T) { testBatchAtomicity(t, factory()) })
		t.Run("ScanOrderAndBound", func(t *testing.T) { testScanOrderAndBound(t, factory()) })
		t.Run("SizeBounds", func(t *testing.T) { testSizeBounds(t, factory()) })
		t.Run("SnapshotStability", func(t *testing.T) { testSnapshotStability(t, factory()) })
		t.Run("CommitPointsIncrease", func(t *testing.T) { testCommitPointsIncrease(t, factory()) })
		t.Run("DropCollection", func(t *testing.T) { testDropCollection(t, factory()) })
		t.Run("ControlClearAndUnknown", func(t *testing.T) { testControlClearAndUnknown(t, factory()) })
	})
}

func testRoundTrip(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	if _, err := be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 1, Value: []byte("a")},
		{Collection: 0, Key: 2, Value: []byte("bb")},
	}, false); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	v, _, found, err := be.Get(ctx, 0, 1)
	if err != nil || !found || string(v) != "a" {
		t.Fatalf("Get(1) = %q %v %v", v, found, err)
	}
	v, _, found, err = be.Get(ctx, 0, 2)
	if err != nil || !found || string(v) != "bb" {
		t.Fatalf("Get(2) = %q %v %v", v, found, err)
	}
	_, _, found, err = be.Get(ctx, 0, 3)
	if err != nil || found {
		t.Fatalf("Get(3) should be missing, got found=%v err=%v", found, err)
	}
}

func testDelete(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: []byte("a")}}, false)
	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: nil}}, false)

	_, _, found, err := be.Get(ctx, 0, 1)
	if err != nil || found {
		t.Fatalf("expected deleted key to be missing, found=%v err=%v", found, err)
	}
}

func testEmptyVsMissing(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 1, Value: []byte{}},
	}, false)

	v, _, found, err := be.Get(ctx, 0, 1)
	if err != nil || !found || len(v) != 0 {
		t.Fatalf("empty value should be present with length 0, got %q found=%v err=%v", v, found, err)
	}
	_, _, found, err = be.Get(ctx, 0, 2)
	if err != nil || found {
		t.Fatalf("never-written key should be missing")
	}
}

func testBatchAtomicity(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	if _, err := be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 100, Value: []byte("x")},
		{Collection: 0, Key: 101, Value: []byte("y")},
		{Collection: 0, Key: 102, Value: []byte("z")},
	}, false); err != nil {
		t.Fatalf("PutBatch: %v", err)
	}

	for _, k := range []int64{100, 101, 102} {
		if _, _, found, _ := be.Get(ctx, 0, k); !found {
			t.Fatalf("key %d should be visible after the batch commits", k)
		}
	}
}

func testScanOrderAndBound(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 2, Value: []byte("a")},
		{Collection: 0, Key: 5, Value: []byte("b")},
		{Collection: 0, Key: 9, Value: []byte("c")},
		{Collection: 0, Key: 11, Value: []byte("d")},
	}, false)

	keys, _, _, err := be.Scan(ctx, 0, 0, 3)
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
		if keys[i] < 0 {
			t.Fatalf("scan returned a key below min_key")
		}
	}
}

func testSizeBounds(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	if !be.SupportsFeature(backend.FeatureEstimateSize) {
		t.Skip("backend does not support size estimation")
	}
	be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 0, Key: 1, Value: []byte("a")},
		{Collection: 0, Key: 2, Value: []byte("b")},
		{Collection: 0, Key: 3, Value: []byte("c")},
	}, false)

	est, err := be.EstimateSize(ctx, 0, 1, 3)
	if err != nil {
		t.Fatalf("EstimateSize: %v", err)
	}
	if est.MinCardinality > 3 || est.MaxCardinality < 3 {
		t.Fatalf("bounds should bracket the true count of 3: %+v", est)
	}
}

func testSnapshotStability(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	if !be.SupportsFeature(backend.FeatureSnapshot) {
		t.Skip("backend does not support snapshots")
	}
	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("a")}}, false)

	snap, err := be.BeginSnapshot(ctx)
	if err != nil {
		t.Fatalf("BeginSnapshot: %v", err)
	}
	defer snap.Release()

	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 10, Value: []byte("b")}}, false)

	v, _, found := snap.Get(0, 10)
	if !found || string(v) != "a" {
		t.Fatalf("snapshot should still observe the pre-write value, got %q found=%v", v, found)
	}
}

func testCommitPointsIncrease(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	p1, err := be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: []byte("a")}}, false)
	if err != nil {
		t.Fatalf("PutBatch 1: %v", err)
	}
	p2, err := be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 2, Value: []byte("b")}}, false)
	if err != nil {
		t.Fatalf("PutBatch 2: %v", err)
	}
	if p2 <= p1 {
		t.Fatalf("commit points must strictly increase: %d then %d", p1, p2)
	}
}

func testDropCollection(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	be.PutBatch(ctx, []backend.WriteTask{
		{Collection: 5, Key: 1, Value: []byte("a")},
		{Collection: 6, Key: 1, Value: []byte("b")},
	}, false)

	if err := be.DropCollection(ctx, 5); err != nil {
		t.Fatalf("DropCollection: %v", err)
	}
	if _, _, found, _ := be.Get(ctx, 5, 1); found {
		t.Fatalf("dropped collection should have no data")
	}
	if v, _, found, _ := be.Get(ctx, 6, 1); !found || string(v) != "b" {
		t.Fatalf("other collections must be unaffected by drop")
	}
}

func testControlClearAndUnknown(t *testing.T, be backend.Backend) {
	ctx := context.Background()
	if !be.SupportsFeature(backend.FeatureControl) {
		t.Skip("backend does not support the control channel")
	}
	be.PutBatch(ctx, []backend.WriteTask{{Collection: 0, Key: 1, Value: []byte("a")}}, false)

	if _, err := be.Control(ctx, "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, found, _ := be.Get(ctx, 0, 1); found {
		t.Fatalf("clear should remove all data")
	}
	if _, err := be.Control(ctx, "not-a-real-command"); err == nil {
		t.Fatalf("unrecognized control command should error")
	}
}
