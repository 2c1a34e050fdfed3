// Package engine implements the CORE of the Universal Key-Value engine:
// the batch data-plane, transaction manager, and collection registry, all
// dispatched against a pluggable backend.Backend.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/unum-cloud/ukv-go/lib/backend"
	"github.com/unum-cloud/ukv-go/lib/backend/memstore"
	"github.com/unum-cloud/ukv-go/lib/backend/pebblestore"
	"github.com/unum-cloud/ukv-go/lib/collection"
	"github.com/unum-cloud/ukv-go/lib/log"
	"github.com/unum-cloud/ukv-go/lib/txn"
)

// Config is the JSON document open(config_json) accepts. The engine
// itself only requires engine/path/cache; a concrete backend may accept
// further fields via its own config parsing.
type Config struct {
	Engine string `json:"engine"`
	Path   string `json:"path,omitempty"`
	Cache  int64  `json:"cache,omitempty"`
}

// DB is a process-level handle to an opened store: the batch data-plane,
// the transaction manager, and the collection registry, all bound to one
// backend.
type DB struct {
	be   backend.Backend
	regs *collection.Registry
	txns *txn.Manager
	log  log.ILogger
}

// Open parses configJSON and opens the named backend.
func Open(configJSON string) (*DB, error) {
	var cfg Config
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, NewError(KindUsage, "open: invalid config json: %v", err)
	}

	var be backend.Backend
	switch cfg.Engine {
	case "", "memory":
		be = memstore.New()
	case "pebble":
		if cfg.Path == "" {
			return nil, NewError(KindUsage, "open: pebble engine requires a path")
		}
		opts := pebblestore.DefaultOptions()
		if cfg.Cache > 0 {
			opts.CacheBytes = cfg.Cache
		}
		store, err := pebblestore.Open(cfg.Path, opts)
		if err != nil {
			return nil, NewError(KindIO, "open: %v", err)
		}
		be = store
	default:
		return nil, NewError(KindUsage, "open: unknown engine %q", cfg.Engine)
	}

	return OpenWithBackend(be), nil
}

// OpenWithBackend wraps an already-constructed backend, used by the
// remote backend variant and by tests that want a bare memstore.
func OpenWithBackend(be backend.Backend) *DB {
	return &DB{
		be:   be,
		regs: collection.New(),
		txns: txn.NewManager(be),
		log:  log.New("engine"),
	}
}

// Backend returns the backend this DB is bound to, for callers that need
// to front it directly (e.g. the RPC server) rather than go through the
// batch/transaction facade.
func (db *DB) Backend() backend.Backend {
	return db.be
}

// Close releases the backend. Closing a DB while collections,
// transactions, or arenas remain live is the caller's responsibility —
// the engine does not crash but may leak per the lifecycle contract.
func (db *DB) Close() error {
	return db.be.Close()
}

// Control executes a control-channel command against the live backend.
func (db *DB) Control(ctx context.Context, request string) (string, error) {
	controlCommandCounter(request).Inc()
	switch request {
	case "reset":
		db.regs.Reset()
	}
	resp, err := db.be.Control(ctx, request)
	if err != nil {
		return "", NewError(KindIO, "control %q: %v", request, err)
	}
	return resp, nil
}

func withTimer(h interface{ Update(float64) }, start time.Time) {
	h.Update(time.Since(start).Seconds())
}
