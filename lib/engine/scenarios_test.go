package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/unum-cloud/ukv-go/lib/arena"
	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/backend/memstore"
	"github.com/unum-cloud/ukv-go/lib/engine"
	"github.com/unum-cloud/ukv-go/lib/task"
)

func newTestDB(t *testing.T) *engine.DB {
	t.Helper()
	db := engine.OpenWithBackend(memstore.New())
	t.Cleanup(func() { db.Close() })
	return db
}

// Scenario A: write two keys, read three (one missing), and check both
// the reported lengths and the concatenated value bytes.
func TestScenarioA_WriteThenReadMissing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ar := arena.New()

	one, two, three := int64(1), int64(2), int64(3)
	valA, valBB := []byte("a"), []byte("bb")

	keys := task.FromSlice([]int64{one, two})
	values := task.FromSlice([][]byte{valA, valBB})
	if err := engine.FacadeWrite(ctx, db, nil, 2, task.Absent[backend.CollectionID](2), keys, values, 0); err != nil {
		t.Fatalf("write: %v", err)
	}

	readKeys := task.FromSlice([]int64{one, two, three})
	tape, err := engine.FacadeRead(ctx, db, nil, ar, 3, task.Absent[backend.CollectionID](3), readKeys, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	wantLengths := []uint32{1, 2, arena.MissingLength}
	for i, want := range wantLengths {
		if tape.Lengths[i] != want {
			t.Fatalf("length[%d] = %d, want %d", i, tape.Lengths[i], want)
		}
	}
	if got, ok := tape.Slice(0); !ok || string(got) != "a" {
		t.Fatalf("key 1 = %q, want %q", got, "a")
	}
	if got, ok := tape.Slice(1); !ok || string(got) != "bb" {
		t.Fatalf("key 2 = %q, want %q", got, "bb")
	}
	if _, ok := tape.Slice(2); ok {
		t.Fatalf("key 3 should be missing")
	}
	if string(tape.Values) != "abb" {
		t.Fatalf("packed values = %q, want %q", tape.Values, "abb")
	}
}

// Scenario B: a named collection's data is unreachable once the
// collection is removed, and the name disappears from collection_list.
func TestScenarioB_CollectionRemoveInvalidatesData(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ar := arena.New()

	usersID := db.CollectionOpen("users")
	key := int64(7)
	if err := db.Write(ctx, nil, []engine.WriteTask{{Collection: usersID, Key: key, Value: []byte("x")}}, 0); err != nil {
		t.Fatalf("write: %v", err)
	}

	names := string(engine.FacadeCollectionList(db, ar))
	if !strings.Contains(names, "users") {
		t.Fatalf("collection_list() = %q, want it to contain %q", names, "users")
	}

	if err := db.CollectionRemove(ctx, "users"); err != nil {
		t.Fatalf("collection_remove: %v", err)
	}

	results, err := db.Read(ctx, nil, []engine.ReadTask{{Collection: usersID, Key: key}}, 0)
	if err != nil {
		t.Fatalf("read after remove: %v", err)
	}
	if results[0].Found {
		t.Fatalf("read(users_id, 7) after collection_remove should be missing")
	}
}

// Scenario E: a values=null batch write over N keys deletes all of them.
func TestScenarioE_NullValuesDeleteAll(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ar := arena.New()

	keySlice := make([]int64, 10)
	writeTasks := make([]engine.WriteTask, 10)
	for i := range keySlice {
		keySlice[i] = int64(i + 1)
		writeTasks[i] = engine.WriteTask{Key: keySlice[i], Value: []byte("v")}
	}
	if err := db.Write(ctx, nil, writeTasks, 0); err != nil {
		t.Fatalf("initial write: %v", err)
	}

	keys := task.FromSlice(keySlice)
	nilValues := task.Absent[[]byte](10)
	if err := engine.FacadeWrite(ctx, db, nil, 10, task.Absent[backend.CollectionID](10), keys, nilValues, 0); err != nil {
		t.Fatalf("null-value write: %v", err)
	}

	tape, err := engine.FacadeRead(ctx, db, nil, ar, 10, task.Absent[backend.CollectionID](10), keys, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for i, l := range tape.Lengths {
		if l != arena.MissingLength {
			t.Fatalf("key %d still present after null-value write, length %d", keySlice[i], l)
		}
	}
}

// read_lengths_only reports true lengths for present keys and
// arena.MissingLength for an absent one, without packing any value bytes.
func TestReadLengthsOnly(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ar := arena.New()

	one, two := int64(1), int64(2)
	if err := db.Write(ctx, nil, []engine.WriteTask{{Key: one, Value: []byte("hello")}}, 0); err != nil {
		t.Fatalf("write: %v", err)
	}

	keys := task.FromSlice([]int64{one, two})
	tape, err := engine.FacadeRead(ctx, db, nil, ar, 2, task.Absent[backend.CollectionID](2), keys, engine.OptionReadLengthsOnly)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if tape.Lengths[0] != 5 {
		t.Fatalf("length[0] = %d, want 5", tape.Lengths[0])
	}
	if tape.Lengths[1] != arena.MissingLength {
		t.Fatalf("length[1] = %d, want MissingLength", tape.Lengths[1])
	}
	if len(tape.Values) != 0 {
		t.Fatalf("packed values = %q, want empty (lengths only)", tape.Values)
	}
}

// Scenario F: scan(min_key=0, scan_length=3) over {2,5,9,11} returns [2,5,9].
func TestScenarioF_ScanReturnsBoundedAscendingKeys(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	tasks := make([]engine.WriteTask, 0, 4)
	for _, k := range []int64{2, 5, 9, 11} {
		tasks = append(tasks, engine.WriteTask{Key: k, Value: []byte("v")})
	}
	if err := db.Write(ctx, nil, tasks, 0); err != nil {
		t.Fatalf("write: %v", err)
	}

	results, err := db.Scan(ctx, nil, []engine.ScanTask{{MinKey: 0, ScanLength: 3}}, 0)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []int64{2, 5, 9}
	got := results[0].Keys
	if len(got) != len(want) {
		t.Fatalf("scan returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scan returned %v, want %v", got, want)
		}
	}
}
