package engine

import (
	"context"
	"time"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/txn"
)

// Write applies tasks. If txnHandle is non-nil, the write is buffered in
// that transaction's write-set; otherwise it is applied atomically
// against the live store under a single new commit point.
func (db *DB) Write(ctx context.Context, txnHandle *txn.Handle, tasks []WriteTask, opts Options) error {
	defer withTimer(writeLatency, time.Now())
	if err := opts.Validate(); err != nil {
		return err
	}
	writeTasksTotal.Add(len(tasks))

	if txnHandle != nil {
		for _, t := range tasks {
			if err := db.txns.Write(ctx, *txnHandle, t.Collection, t.Key, t.Value); err != nil {
				return NewError(KindUsage, "write: %v", err)
			}
		}
		return nil
	}

	be := make([]backend.WriteTask, len(tasks))
	for i, t := range tasks {
		be[i] = backend.WriteTask{Collection: t.Collection, Key: t.Key, Value: t.Value}
	}
	if _, err := db.be.PutBatch(ctx, be, opts.has(OptionWriteFlush)); err != nil {
		return NewError(KindIO, "write: %v", err)
	}
	return nil
}

// Read serves tasks either from a transaction (read-your-writes, then
// snapshot or live) or directly from the live backend.
func (db *DB) Read(ctx context.Context, txnHandle *txn.Handle, tasks []ReadTask, opts Options) ([]ReadResult, error) {
	defer withTimer(readLatency, time.Now())
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if txnHandle == nil && opts.has(OptionReadTrack) {
		return nil, NewError(KindUsage, "read: read_track requires a transaction")
	}
	readTasksTotal.Add(len(tasks))

	results := make([]ReadResult, len(tasks))

	if txnHandle != nil {
		track := opts.has(OptionReadTrack)
		for i, t := range tasks {
			v, found, err := db.txns.Read(ctx, *txnHandle, t.Collection, t.Key, track)
			if err != nil {
				return nil, NewError(KindUsage, "read: %v", err)
			}
			if !found {
				results[i] = ReadResult{Found: false}
				continue
			}
			if opts.has(OptionReadLengthsOnly) {
				results[i] = ReadResult{Found: true, Length: uint32(len(v))}
				continue
			}
			results[i] = ReadResult{Value: v, Found: true, Length: uint32(len(v))}
		}
		return results, nil
	}

	for i, t := range tasks {
		v, _, found, err := db.be.Get(ctx, t.Collection, t.Key)
		if err != nil {
			return nil, NewError(KindIO, "read: %v", err)
		}
		if !found {
			results[i] = ReadResult{Found: false}
			continue
		}
		if opts.has(OptionReadLengthsOnly) {
			results[i] = ReadResult{Found: true, Length: uint32(len(v))}
			continue
		}
		results[i] = ReadResult{Value: v, Found: true, Length: uint32(len(v))}
	}
	return results, nil
}

// Scan returns, per task, up to ScanLength ascending keys >= MinKey.
// Scans are paginated: consecutive calls are not guaranteed a consistent
// snapshot unless run inside a snapshot transaction.
func (db *DB) Scan(ctx context.Context, txnHandle *txn.Handle, tasks []ScanTask, opts Options) ([]ScanResult, error) {
	defer withTimer(scanLatency, time.Now())
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	scanTasksTotal.Add(len(tasks))

	results := make([]ScanResult, len(tasks))

	if txnHandle != nil {
		// transactional scans go through the manager, which serves them
		// from the transaction's pinned snapshot when it has one, so
		// pagination across calls in a snapshot txn stays consistent.
		for i, t := range tasks {
			keys, values, err := db.txns.Scan(ctx, *txnHandle, t.Collection, t.MinKey, t.ScanLength)
			if err != nil {
				return nil, NewError(KindUsage, "scan: %v", err)
			}
			results[i] = ScanResult{Keys: keys, Values: values}
		}
		return results, nil
	}

	for i, t := range tasks {
		keys, values, _, err := db.be.Scan(ctx, t.Collection, t.MinKey, t.ScanLength)
		if err != nil {
			return nil, NewError(KindIO, "scan: %v", err)
		}
		results[i] = ScanResult{Keys: keys, Values: values}
	}
	return results, nil
}

// Size returns a loose six-number bound per task.
func (db *DB) Size(ctx context.Context, tasks []SizeTask) ([]backend.SizeEstimate, error) {
	sizeTasksTotal.Add(len(tasks))
	if !db.be.SupportsFeature(backend.FeatureEstimateSize) {
		return nil, NewError(KindUnsupported, "size: backend does not support size estimation")
	}
	results := make([]backend.SizeEstimate, len(tasks))
	for i, t := range tasks {
		est, err := db.be.EstimateSize(ctx, t.Collection, t.MinKey, t.MaxKey)
		if err != nil {
			return nil, NewError(KindIO, "size: %v", err)
		}
		results[i] = est
	}
	return results, nil
}
