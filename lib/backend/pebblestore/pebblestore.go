package pebblestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/log"
)

var supported = backend.FeaturePointGet | backend.FeaturePointPutBatch |
	backend.FeatureRangeScan | backend.FeatureEstimateSize |
	backend.FeatureSnapshot | backend.FeatureControl

// Store is the persistent-local backend variant, backed by a single
// Pebble instance shared across all collections.
type Store struct {
	db    *pebble.DB
	clock atomic.Uint64
	log   log.ILogger
}

// Options configures the underlying Pebble instance, mirroring the sizing
// knobs the reference pebble store tunes.
type Options struct {
	CacheBytes       int64
	MemTableBytes    int
	MaxMemTableTotal int
}

// DefaultOptions returns sane defaults for a moderate-size local store.
func DefaultOptions() Options {
	return Options{
		CacheBytes:       64 << 20,
		MemTableBytes:    32 << 20,
		MaxMemTableTotal: 128 << 20,
	}
}

// Open opens or creates a Pebble store at path.
func Open(path string, opts Options) (*Store, error) {
	pebbleOpts := &pebble.Options{
		Cache:                       pebble.NewCache(opts.CacheBytes),
		MemTableSize:                opts.MemTableBytes,
		MemTableStopWritesThreshold: 4,
	}
	_ = opts.MaxMemTableTotal // reserved for future WAL sizing tuning

	db, err := pebble.Open(path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("pebblestore: open %s: %w", path, err)
	}

	s := &Store{db: db, log: log.New("backend/pebblestore")}

	if v, closer, err := db.Get(clockKey); err == nil {
		s.clock.Store(decodeClock(v))
		closer.Close()
	} else if err != pebble.ErrNotFound {
		db.Close()
		return nil, fmt.Errorf("pebblestore: reading clock: %w", err)
	}

	return s, nil
}

func (s *Store) SupportsFeature(f backend.Feature) bool {
	return supported&f != 0
}

func (s *Store) Get(_ context.Context, collection backend.CollectionID, key int64) ([]byte, uint64, bool, error) {
	raw, closer, err := s.db.Get(encodeKey(collection, key))
	if err == pebble.ErrNotFound {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	version, value := decodeValue(raw)
	closer.Close()
	return value, version, true, nil
}

func (s *Store) PutBatch(_ context.Context, tasks []backend.WriteTask, flush bool) (uint64, error) {
	if len(tasks) == 0 {
		return s.clock.Load(), nil
	}

	point := s.clock.Add(1)

	batch := s.db.NewBatch()
	defer batch.Close()

	for _, t := range tasks {
		k := encodeKey(t.Collection, t.Key)
		if t.Value == nil {
			if err := batch.Delete(k, nil); err != nil {
				return 0, err
			}
			continue
		}
		if err := batch.Set(k, encodeValue(point, t.Value), nil); err != nil {
			return 0, err
		}
	}
	if err := batch.Set(clockKey, encodeClock(point), nil); err != nil {
		return 0, err
	}

	wo := pebble.NoSync
	if flush {
		wo = pebble.Sync
	}
	if err := batch.Commit(wo); err != nil {
		return 0, err
	}
	return point, nil
}

func (s *Store) Scan(_ context.Context, collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, []uint64, error) {
	lower := encodeKey(collection, minKey)
	upper := encodeKey(collection+1, -1<<63)

	iter := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	defer iter.Close()

	keys := make([]int64, 0, limit)
	values := make([][]byte, 0, limit)
	versions := make([]uint64, 0, limit)

	for valid := iter.First(); valid && len(keys) < limit; valid = iter.Next() {
		_, key := decodeKey(iter.Key())
		version, value := decodeValue(iter.Value())
		keys = append(keys, key)
		values = append(values, value)
		versions = append(versions, version)
	}
	return keys, values, versions, iter.Error()
}

func (s *Store) EstimateSize(_ context.Context, collection backend.CollectionID, minKey, maxKey int64) (backend.SizeEstimate, error) {
	lower := encodeKey(collection, minKey)
	var upper []byte
	if maxKey == math.MaxInt64 {
		// maxKey+1 would overflow to math.MinInt64 and sort below lower,
		// yielding an empty range; the next collection's start is the
		// correct exclusive upper bound instead.
		upper = encodeKey(collection+1, math.MinInt64)
	} else {
		upper = encodeKey(collection, maxKey+1)
	}

	iter := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	defer iter.Close()

	var count, bytes int64
	for valid := iter.First(); valid; valid = iter.Next() {
		count++
		bytes += int64(len(iter.Value()) - 8)
	}
	if err := iter.Error(); err != nil {
		return backend.SizeEstimate{}, err
	}

	diskBytes, _ := s.db.EstimateDiskUsage(lower, upper)

	return backend.SizeEstimate{
		MinCardinality: uint64(count),
		MaxCardinality: uint64(count),
		MinValueBytes:  uint64(bytes),
		MaxValueBytes:  uint64(bytes),
		MinMemoryBytes: diskBytes,
		MaxMemoryBytes: diskBytes + uint64(count)*64,
	}, nil
}

func (s *Store) BeginSnapshot(_ context.Context) (backend.Snapshot, error) {
	return &snapshot{snap: s.db.NewSnapshot()}, nil
}

func (s *Store) Control(_ context.Context, command string) (string, error) {
	switch command {
	case "clear", "reset":
		if err := s.clearAll(); err != nil {
			return "", err
		}
		return command + "d", nil
	case "compact":
		hi := make([]byte, 16)
		for i := range hi {
			hi[i] = 0xFF
		}
		if err := s.db.Compact(nil, hi, true); err != nil {
			return "", err
		}
		return "compaction requested", nil
	case "info":
		info := map[string]any{"engine": "pebblestore"}
		b, _ := json.Marshal(info)
		return string(b), nil
	case "usage":
		m := s.db.Metrics()
		var numSSTables int64
		for _, l := range m.Levels {
			numSSTables += l.NumFiles
		}
		usage := map[string]any{
			"disk_bytes": m.DiskSpaceUsage(),
			"num_sstables": numSSTables,
		}
		b, _ := json.Marshal(usage)
		return string(b), nil
	default:
		return "", fmt.Errorf("unrecognized control command: %s", command)
	}
}

func (s *Store) clearAll() error {
	iter := s.db.NewIter(&pebble.IterOptions{
		LowerBound: encodeKey(0, -1<<63),
		UpperBound: clockKey,
	})
	defer iter.Close()

	batch := s.db.NewBatch()
	defer batch.Close()
	for valid := iter.First(); valid; valid = iter.Next() {
		if err := batch.Delete(iter.Key(), nil); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return batch.Commit(pebble.NoSync)
}

func (s *Store) DropCollection(_ context.Context, collection backend.CollectionID) error {
	lower := encodeKey(collection, -1<<63)
	upper := encodeKey(collection+1, -1<<63)

	iter := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	defer iter.Close()

	batch := s.db.NewBatch()
	defer batch.Close()
	for valid := iter.First(); valid; valid = iter.Next() {
		if err := batch.Delete(iter.Key(), nil); err != nil {
			return err
		}
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return batch.Commit(pebble.NoSync)
}

func (s *Store) Close() error {
	return s.db.Close()
}

type snapshot struct {
	snap *pebble.Snapshot
}

func (sn *snapshot) Get(collection backend.CollectionID, key int64) ([]byte, uint64, bool) {
	raw, closer, err := sn.snap.Get(encodeKey(collection, key))
	if err != nil {
		return nil, 0, false
	}
	version, value := decodeValue(raw)
	closer.Close()
	return value, version, true
}

func (sn *snapshot) Scan(collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, []uint64) {
	lower := encodeKey(collection, minKey)
	upper := encodeKey(collection+1, -1<<63)

	iter := sn.snap.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	defer iter.Close()

	keys := make([]int64, 0, limit)
	values := make([][]byte, 0, limit)
	versions := make([]uint64, 0, limit)
	for valid := iter.First(); valid && len(keys) < limit; valid = iter.Next() {
		_, key := decodeKey(iter.Key())
		version, value := decodeValue(iter.Value())
		keys = append(keys, key)
		values = append(values, value)
		versions = append(versions, version)
	}
	return keys, values, versions
}

func (sn *snapshot) Release() {
	sn.snap.Close()
}
