package engine

import (
	"context"
	"math"

	"github.com/unum-cloud/ukv-go/lib/arena"
	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/task"
	"github.com/unum-cloud/ukv-go/lib/txn"
)

// This file is the C-shaped facade: it accepts the same
// (base pointer, byte stride) argument shape as the original external
// interface and decodes it through task.Cursor, the one place raw
// strides are interpreted, before delegating to DB's Go-idiomatic
// methods. Ordinary Go callers should prefer DB.Write/Read/Scan/Size
// directly; this layer exists so a future cgo or FFI boundary can be
// added without redesigning the core.

// FacadeWrite mirrors ukv_write: collections/keys/values are strided
// cursors over tasksCount tasks. A nil entry in values deletes that task.
func FacadeWrite(ctx context.Context, db *DB, txnHandle *txn.Handle, tasksCount int, collections task.Cursor[backend.CollectionID], keys task.Cursor[int64], values task.Cursor[[]byte], opts Options) error {
	if err := keys.RequireNonBroadcast("keys"); err != nil {
		return NewError(KindUsage, "%v", err)
	}

	tasks := make([]WriteTask, tasksCount)
	for i := 0; i < tasksCount; i++ {
		collection := backend.DefaultCollection
		if !collections.IsAbsent() {
			collection = collections.At(i)
		}
		tasks[i] = WriteTask{Collection: collection, Key: keys.At(i), Value: values.At(i)}
	}

	return db.Write(ctx, txnHandle, tasks, opts)
}

// FacadeRead mirrors ukv_read: results are packed into ar as a value
// tape, matching the header-then-bytes layout the original contract
// specifies.
func FacadeRead(ctx context.Context, db *DB, txnHandle *txn.Handle, ar *arena.Arena, tasksCount int, collections task.Cursor[backend.CollectionID], keys task.Cursor[int64], opts Options) (arena.ValueTape, error) {
	if err := keys.RequireNonBroadcast("keys"); err != nil {
		return arena.ValueTape{}, NewError(KindUsage, "%v", err)
	}

	tasks := make([]ReadTask, tasksCount)
	for i := 0; i < tasksCount; i++ {
		collection := backend.DefaultCollection
		if !collections.IsAbsent() {
			collection = collections.At(i)
		}
		tasks[i] = ReadTask{Collection: collection, Key: keys.At(i)}
	}

	results, err := db.Read(ctx, txnHandle, tasks, opts)
	if err != nil {
		return arena.ValueTape{}, err
	}

	ar.Reset()

	if opts.has(OptionReadLengthsOnly) {
		lengths := make([]uint32, tasksCount)
		for i, r := range results {
			if r.Found {
				lengths[i] = r.Length
			} else {
				lengths[i] = arena.MissingLength
			}
		}
		return ar.WriteLengthTape(lengths), nil
	}

	values := make([][]byte, tasksCount)
	for i, r := range results {
		if r.Found {
			values[i] = r.Value
		}
	}
	return ar.WriteValueTape(values), nil
}

// FacadeScanResult is one task's packed scan output.
type FacadeScanResult struct {
	Keys    []byte // big-endian int64 array, from Arena.KeyTape
	Lengths []uint32
}

// FacadeScan mirrors ukv_scan: each task's found keys are packed into ar.
func FacadeScan(ctx context.Context, db *DB, txnHandle *txn.Handle, ar *arena.Arena, tasksCount int, collections task.Cursor[backend.CollectionID], minKeys task.Cursor[int64], scanLengths task.Cursor[int], opts Options) ([]FacadeScanResult, error) {
	tasks := make([]ScanTask, tasksCount)
	for i := 0; i < tasksCount; i++ {
		collection := backend.DefaultCollection
		if !collections.IsAbsent() {
			collection = collections.At(i)
		}
		minKey := minKeys.At(i)
		if minKeys.IsAbsent() {
			minKey = math.MinInt64 // absent min key scans from the lowest representable key
		}
		tasks[i] = ScanTask{Collection: collection, MinKey: minKey, ScanLength: scanLengths.At(i)}
	}

	results, err := db.Scan(ctx, txnHandle, tasks, opts)
	if err != nil {
		return nil, err
	}

	ar.Reset()
	out := make([]FacadeScanResult, tasksCount)
	for i, r := range results {
		out[i] = FacadeScanResult{
			Keys:    ar.KeyTape(r.Keys),
			Lengths: lengthsOf(r.Values),
		}
	}
	return out, nil
}

func lengthsOf(values [][]byte) []uint32 {
	lengths := make([]uint32, len(values))
	for i, v := range values {
		lengths[i] = uint32(len(v))
	}
	return lengths
}

// FacadeCollectionList packs the registry's names into ar as a
// NUL-delimited buffer.
func FacadeCollectionList(db *DB, ar *arena.Arena) []byte {
	ar.Reset()
	return ar.NameTape(db.CollectionList())
}

// ArenaFree is a literal no-op: Go's garbage collector reclaims the
// arena's backing array once the caller drops its reference. The symbol
// is retained so every operation the external interface names has a
// directly corresponding function.
func ArenaFree(*arena.Arena) {}

// ErrorFree is a literal no-op for the same reason as ArenaFree.
func ErrorFree(error) {}
