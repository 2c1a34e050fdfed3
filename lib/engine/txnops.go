package engine

import (
	"context"
	"errors"

	"github.com/unum-cloud/ukv-go/lib/txn"
)

// TxnBegin starts, or resets for reuse, a transaction. gen == 0 asks the
// engine to assign a generation. OptionReadTrack is accepted here (it must
// pass Validate like on any other call) but has no effect: read-tracking is
// requested per read, not at txn_begin, matching the original contract.
func (db *DB) TxnBegin(ctx context.Context, reuse *txn.Handle, gen uint64, opts Options) (txn.Handle, error) {
	if err := opts.Validate(); err != nil {
		return txn.Handle{}, err
	}
	h, err := db.txns.Begin(ctx, reuse, gen, txn.Options{
		Snapshot: opts.has(OptionTxnSnapshot),
	})
	if err != nil {
		return txn.Handle{}, NewError(KindUsage, "txn_begin: %v", err)
	}
	return h, nil
}

// TxnCommit validates and applies a transaction's buffered writes. A
// conflict leaves the transaction in the conflicted state, usable for
// retry or inspection until freed or reused.
func (db *DB) TxnCommit(ctx context.Context, h txn.Handle, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	err := db.txns.Commit(ctx, h, opts.has(OptionWriteFlush))
	if err == nil {
		txnCommitsTotal.Inc()
		return nil
	}

	var conflict *txn.ConflictError
	if errors.As(err, &conflict) {
		txnConflictsTotal.Inc()
		return NewError(KindConflict, "%v", err)
	}
	return NewError(KindIO, "txn_commit: %v", err)
}

// TxnFree releases a transaction's buffers and any snapshot. Freeing an
// unknown or already-gone handle is a no-op.
func (db *DB) TxnFree(h txn.Handle) {
	db.txns.Free(h)
}
