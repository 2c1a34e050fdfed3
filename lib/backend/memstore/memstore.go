package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/btree"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/backend/sizehist"
	"github.com/unum-cloud/ukv-go/lib/log"
)

const btreeDegree = 32

var supported = backend.FeaturePointGet | backend.FeaturePointPutBatch |
	backend.FeatureRangeScan | backend.FeatureEstimateSize |
	backend.FeatureSnapshot | backend.FeatureControl

// entry is the value stored per key in a collection's btree.
type entry struct {
	key     int64
	value   []byte
	version uint64
}

func (a entry) Less(than btree.Item) bool {
	return a.key < than.(entry).key
}

type collState struct {
	mu   sync.RWMutex
	tree *btree.BTree
}

func newCollState() *collState {
	return &collState{tree: btree.New(btreeDegree)}
}

// Store is the in-memory, btree-ordered backend variant.
type Store struct {
	mu          sync.RWMutex
	collections map[backend.CollectionID]*collState
	clock       atomic.Uint64
	hist        *sizehist.Histogram
	log         log.ILogger
}

// New returns an empty in-memory store with the default collection ready.
func New() *Store {
	s := &Store{
		collections: map[backend.CollectionID]*collState{
			backend.DefaultCollection: newCollState(),
		},
		hist: sizehist.New(),
		log:  log.New("backend/memstore"),
	}
	return s
}

func (s *Store) SupportsFeature(f backend.Feature) bool {
	return supported&f != 0
}

func (s *Store) getOrCreate(id backend.CollectionID) *collState {
	s.mu.RLock()
	c, ok := s.collections[id]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[id]; ok {
		return c
	}
	c = newCollState()
	s.collections[id] = c
	return c
}

func (s *Store) Get(_ context.Context, collection backend.CollectionID, key int64) ([]byte, uint64, bool, error) {
	c := s.getOrCreate(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()

	item := c.tree.Get(entry{key: key})
	if item == nil {
		return nil, 0, false, nil
	}
	e := item.(entry)
	return e.value, e.version, true, nil
}

// PutBatch locks every distinct collection touched, in ascending id
// order, applies all tasks, then releases — giving readers of any of
// those collections an all-or-nothing view of the batch.
func (s *Store) PutBatch(_ context.Context, tasks []backend.WriteTask, _ bool) (uint64, error) {
	if len(tasks) == 0 {
		return s.clock.Load(), nil
	}

	ids := map[backend.CollectionID]struct{}{}
	for _, t := range tasks {
		ids[t.Collection] = struct{}{}
	}
	sorted := make([]backend.CollectionID, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	states := make([]*collState, len(sorted))
	for i, id := range sorted {
		states[i] = s.getOrCreate(id)
	}
	for _, c := range states {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	byID := make(map[backend.CollectionID]*collState, len(sorted))
	for i, id := range sorted {
		byID[id] = states[i]
	}

	point := s.clock.Add(1)
	for _, t := range tasks {
		c := byID[t.Collection]
		if t.Value == nil {
			if old := c.tree.Delete(entry{key: t.Key}); old != nil {
				s.hist.RemoveSample(len(old.(entry).value))
			}
			continue
		}
		if old := c.tree.ReplaceOrInsert(entry{key: t.Key, value: t.Value, version: point}); old != nil {
			s.hist.RemoveSample(len(old.(entry).value))
		}
		s.hist.AddSample(len(t.Value))
	}

	return point, nil
}

func (s *Store) Scan(_ context.Context, collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, []uint64, error) {
	c := s.getOrCreate(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]int64, 0, limit)
	values := make([][]byte, 0, limit)
	versions := make([]uint64, 0, limit)

	c.tree.AscendGreaterOrEqual(entry{key: minKey}, func(i btree.Item) bool {
		if len(keys) >= limit {
			return false
		}
		e := i.(entry)
		keys = append(keys, e.key)
		values = append(values, e.value)
		versions = append(versions, e.version)
		return true
	})

	return keys, values, versions, nil
}

func (s *Store) EstimateSize(_ context.Context, collection backend.CollectionID, minKey, maxKey int64) (backend.SizeEstimate, error) {
	c := s.getOrCreate(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int64
	var bytes int64
	c.tree.AscendGreaterOrEqual(entry{key: minKey}, func(i btree.Item) bool {
		e := i.(entry)
		if e.key > maxKey {
			return false
		}
		count++
		bytes += int64(len(e.value))
		return true
	})

	// exact counts, in-memory: min and max coincide for cardinality and
	// value bytes; only the memory figure gets a slack, a per-entry
	// overhead of 24 bytes at the low end and 48 at the high end.
	return backend.SizeEstimate{
		MinCardinality: uint64(count),
		MaxCardinality: uint64(count),
		MinValueBytes:  uint64(bytes),
		MaxValueBytes:  uint64(bytes),
		MinMemoryBytes: uint64(bytes) + uint64(count)*24,
		MaxMemoryBytes: uint64(bytes) + uint64(count)*48,
	}, nil
}

func (s *Store) BeginSnapshot(_ context.Context) (backend.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frozen := make(map[backend.CollectionID]*btree.BTree, len(s.collections))
	for id, c := range s.collections {
		c.mu.RLock()
		frozen[id] = c.tree.Clone()
		c.mu.RUnlock()
	}
	return &snapshot{trees: frozen}, nil
}

func (s *Store) Control(_ context.Context, command string) (string, error) {
	switch command {
	case "clear":
		s.mu.Lock()
		for id := range s.collections {
			s.collections[id] = newCollState()
		}
		s.mu.Unlock()
		s.hist = sizehist.New()
		return "cleared", nil
	case "reset":
		s.mu.Lock()
		s.collections = map[backend.CollectionID]*collState{
			backend.DefaultCollection: newCollState(),
		}
		s.mu.Unlock()
		s.hist = sizehist.New()
		return "reset", nil
	case "compact":
		// in-memory has nothing to compact; advisory no-op.
		return "compact acknowledged (no-op for memstore)", nil
	case "info":
		info := map[string]any{"engine": "memstore", "ordered": true}
		b, _ := json.Marshal(info)
		return string(b), nil
	case "usage":
		s.mu.RLock()
		numColls := len(s.collections)
		s.mu.RUnlock()
		usage := map[string]any{
			"collections":     numColls,
			"entries":         s.hist.Count(),
			"value_bytes_sum": s.hist.Sum(),
			"avg_value_bytes": s.hist.AverageSize(),
		}
		b, _ := json.Marshal(usage)
		return string(b), nil
	default:
		return "", fmt.Errorf("unrecognized control command: %s", command)
	}
}

func (s *Store) DropCollection(_ context.Context, collection backend.CollectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}

func (s *Store) Close() error {
	return nil
}

type snapshot struct {
	trees map[backend.CollectionID]*btree.BTree
}

func (sn *snapshot) Get(collection backend.CollectionID, key int64) ([]byte, uint64, bool) {
	tree, ok := sn.trees[collection]
	if !ok {
		return nil, 0, false
	}
	item := tree.Get(entry{key: key})
	if item == nil {
		return nil, 0, false
	}
	e := item.(entry)
	return e.value, e.version, true
}

func (sn *snapshot) Scan(collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, []uint64) {
	tree, ok := sn.trees[collection]
	if !ok {
		return nil, nil, nil
	}
	keys := make([]int64, 0, limit)
	values := make([][]byte, 0, limit)
	versions := make([]uint64, 0, limit)
	tree.AscendGreaterOrEqual(entry{key: minKey}, func(i btree.Item) bool {
		if len(keys) >= limit {
			return false
		}
		e := i.(entry)
		keys = append(keys, e.key)
		values = append(values, e.value)
		versions = append(versions, e.version)
		return true
	})
	return keys, values, versions
}

func (sn *snapshot) Release() {
	sn.trees = nil
}
