package engine

import "github.com/unum-cloud/ukv-go/lib/backend"

// WriteTask is one task of a batch write. A nil Value deletes the key; a
// non-nil, zero-length Value sets it to an empty value.
type WriteTask struct {
	Collection backend.CollectionID
	Key        int64
	Value      []byte
}

// ReadTask is one task of a batch read.
type ReadTask struct {
	Collection backend.CollectionID
	Key        int64
}

// ReadResult is one task's outcome from a batch read. Length is always the
// value's true length, even under OptionReadLengthsOnly where Value itself
// is left nil to avoid copying bytes the caller didn't ask for.
type ReadResult struct {
	Value  []byte
	Length uint32
	Found  bool
}

// ScanTask is one task of a batch scan: at most ScanLength keys >= MinKey
// within Collection.
type ScanTask struct {
	Collection backend.CollectionID
	MinKey     int64
	ScanLength int
}

// ScanResult is one scan task's outcome, in ascending key order.
type ScanResult struct {
	Keys   []int64
	Values [][]byte
}

// SizeTask is one task of a batch size estimate: the range [MinKey,
// MaxKey] within Collection.
type SizeTask struct {
	Collection backend.CollectionID
	MinKey     int64
	MaxKey     int64
}
