package txn

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/log"
)

type writeKey struct {
	collection backend.CollectionID
	key        int64
}

type readRecord struct {
	collection backend.CollectionID
	key        int64
	version    uint64
	found      bool
}

// Txn is a single transaction's state: its write-set, read-set, and
// optional snapshot. It is thread-confined — the concurrency model
// requires single-owner use at any instant.
type Txn struct {
	mu         sync.Mutex
	state      State
	generation uint64
	opts       Options
	writes     map[writeKey][]byte
	writeOrder []writeKey // preserves last-write-wins insertion order for deterministic PutBatch task ordering
	reads      map[writeKey]readRecord
	snapshot   backend.Snapshot
	commitPt   uint64
}

func newTxn() *Txn {
	return &Txn{state: StateFresh}
}

func (t *Txn) reset(generation uint64, opts Options, snap backend.Snapshot) {
	if t.snapshot != nil {
		t.snapshot.Release()
	}
	t.state = StateActive
	t.generation = generation
	t.opts = opts
	t.writes = make(map[writeKey][]byte)
	t.writeOrder = nil
	t.reads = make(map[writeKey]readRecord)
	t.snapshot = snap
	t.commitPt = 0
}

// State reports the transaction's current lifecycle state.
func (t *Txn) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Manager owns the set of live transactions for one DB and serializes
// their commits against a single backend.
type Manager struct {
	be              backend.Backend
	commitMu        sync.Mutex // serializes validate+apply for a total commit-point order
	generationClock atomic.Uint64
	usedGenerations sync.Map // uint64 -> struct{}, caller-supplied generations must be unique per session

	mu   sync.Mutex
	txns map[Handle]*Txn

	log log.ILogger
}

// NewManager returns a transaction manager backed by be.
func NewManager(be backend.Backend) *Manager {
	return &Manager{
		be:   be,
		txns: make(map[Handle]*Txn),
		log:  log.New("txn"),
	}
}

// Begin starts (or, if reuse is non-nil and live, resets) a transaction.
// A generation of 0 asks the manager to assign one; a nonzero value must
// be unique across this manager's lifetime.
func (m *Manager) Begin(ctx context.Context, reuse *Handle, generation uint64, opts Options) (Handle, error) {
	if generation == 0 {
		generation = m.generationClock.Add(1)
	} else {
		if _, dup := m.usedGenerations.LoadOrStore(generation, struct{}{}); dup {
			return Handle{}, fmt.Errorf("txn: generation %d already used in this session", generation)
		}
	}

	var snap backend.Snapshot
	if opts.Snapshot {
		s, err := m.be.BeginSnapshot(ctx)
		if err != nil {
			return Handle{}, fmt.Errorf("txn: begin snapshot: %w", err)
		}
		snap = s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if reuse != nil && !reuse.Zero() {
		if t, ok := m.txns[*reuse]; ok {
			t.mu.Lock()
			t.reset(generation, opts, snap)
			t.mu.Unlock()
			return *reuse, nil
		}
	}

	h := newHandle()
	t := newTxn()
	t.reset(generation, opts, snap)
	m.txns[h] = t
	return h, nil
}

func (m *Manager) get(h Handle) (*Txn, error) {
	m.mu.Lock()
	t, ok := m.txns[h]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("txn: unknown handle %s", h)
	}
	return t, nil
}

// Write buffers a task in the transaction's write-set. Last write within
// a transaction wins.
func (m *Manager) Write(_ context.Context, h Handle, collection backend.CollectionID, key int64, value []byte) error {
	t, err := m.get(h)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateActive {
		return fmt.Errorf("txn: write on %s transaction", t.state)
	}
	wk := writeKey{collection, key}
	if _, exists := t.writes[wk]; !exists {
		t.writeOrder = append(t.writeOrder, wk)
	}
	t.writes[wk] = value
	return nil
}

// Read serves a read from the write-set first (read-your-writes), then
// the snapshot (if any), then the live backend. If track is set, the
// observed (key, version) is recorded for OCC validation at commit.
func (m *Manager) Read(ctx context.Context, h Handle, collection backend.CollectionID, key int64, track bool) ([]byte, bool, error) {
	t, err := m.get(h)
	if err != nil {
		return nil, false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateActive {
		return nil, false, fmt.Errorf("txn: read on %s transaction", t.state)
	}

	wk := writeKey{collection, key}
	if v, ok := t.writes[wk]; ok {
		return v, v != nil, nil
	}

	var value []byte
	var version uint64
	var found bool
	if t.snapshot != nil {
		value, version, found = t.snapshot.Get(collection, key)
	} else {
		v, ver, f, err := m.be.Get(ctx, collection, key)
		if err != nil {
			return nil, false, err
		}
		value, version, found = v, ver, f
	}

	if track {
		t.reads[wk] = readRecord{collection: collection, key: key, version: version, found: found}
	}

	return value, found, nil
}

// Scan serves a scan from the transaction's pinned snapshot if it has
// one, falling back to the live backend otherwise. It does not merge in
// the write-set — scans observe committed state, matching the
// non-transactional scan contract, since spec's read-your-writes
// guarantee is stated for point reads only.
func (m *Manager) Scan(ctx context.Context, h Handle, collection backend.CollectionID, minKey int64, limit int) ([]int64, [][]byte, error) {
	t, err := m.get(h)
	if err != nil {
		return nil, nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateActive {
		return nil, nil, fmt.Errorf("txn: scan on %s transaction", t.state)
	}

	if t.snapshot != nil {
		keys, values, _ := t.snapshot.Scan(collection, minKey, limit)
		return keys, values, nil
	}

	keys, values, _, err := m.be.Scan(ctx, collection, minKey, limit)
	return keys, values, err
}

// Commit validates the transaction's read-set (if tracking was used)
// against the live backend and, if valid, applies its write-set
// atomically. On conflict the transaction moves to StateConflicted and
// its buffers are preserved for retry or inspection.
func (m *Manager) Commit(ctx context.Context, h Handle, flush bool) error {
	t, err := m.get(h)
	if err != nil {
		return err
	}

	t.mu.Lock()
	if t.state != StateActive {
		state := t.state
		t.mu.Unlock()
		return fmt.Errorf("txn: commit on %s transaction", state)
	}
	reads := t.reads
	writeOrder := t.writeOrder
	writes := t.writes
	t.mu.Unlock()

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	for wk, want := range reads {
		_, version, found, err := m.be.Get(ctx, wk.collection, wk.key)
		if err != nil {
			return err
		}
		if found != want.found || version != want.version {
			t.mu.Lock()
			t.state = StateConflicted
			t.mu.Unlock()
			return &ConflictError{Collection: wk.collection, Key: wk.key}
		}
	}

	tasks := make([]backend.WriteTask, 0, len(writeOrder))
	for _, wk := range writeOrder {
		tasks = append(tasks, backend.WriteTask{Collection: wk.collection, Key: wk.key, Value: writes[wk]})
	}

	point, err := m.be.PutBatch(ctx, tasks, flush)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.state = StateCommitted
	t.commitPt = point
	t.mu.Unlock()
	return nil
}

// Free releases a transaction's buffers and snapshot, moving it to
// StateGone. Freeing an unknown handle is a no-op, matching *_free(null).
func (m *Manager) Free(h Handle) {
	m.mu.Lock()
	t, ok := m.txns[h]
	if ok {
		delete(m.txns, h)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	t.mu.Lock()
	if t.snapshot != nil {
		t.snapshot.Release()
	}
	t.state = StateGone
	t.mu.Unlock()
}

// State reports a live transaction's state, or StateGone for an unknown
// handle.
func (m *Manager) State(h Handle) State {
	t, err := m.get(h)
	if err != nil {
		return StateGone
	}
	return t.State()
}

// ConflictError reports which key lost the OCC race at commit time.
type ConflictError struct {
	Collection backend.CollectionID
	Key        int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("txn: conflict on collection %d key %d", e.Collection, e.Key)
}
