package collection

import (
	"fmt"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

// Registry maps collection names to stable ids. The default collection
// (empty name) always resolves to backend.DefaultCollection and is never
// listed or removable.
type Registry struct {
	byName *xsync.MapOf[string, backend.CollectionID]
	nextID atomic.Uint64
}

// New returns a registry with only the default collection present.
func New() *Registry {
	r := &Registry{byName: xsync.NewMapOf[string, backend.CollectionID]()}
	r.nextID.Store(uint64(backend.DefaultCollection) + 1)
	return r
}

// Open returns the id for name, creating one if it doesn't already exist.
// An empty name always yields the default collection.
func (r *Registry) Open(name string) backend.CollectionID {
	if name == "" {
		return backend.DefaultCollection
	}
	if id, ok := r.byName.Load(name); ok {
		return id
	}
	id := backend.CollectionID(r.nextID.Add(1) - 1)
	actual, _ := r.byName.LoadOrStore(name, id)
	if actual != id {
		// lost the race to another opener of the same name; the id we
		// minted is simply unused, ids are never reused so this is safe.
		return actual
	}
	return actual
}

// Lookup resolves an existing name without creating one.
func (r *Registry) Lookup(name string) (backend.CollectionID, bool) {
	if name == "" {
		return backend.DefaultCollection, true
	}
	return r.byName.Load(name)
}

// List returns every named (non-default) collection currently registered.
// Order is unspecified.
func (r *Registry) List() []string {
	names := make([]string, 0)
	r.byName.Range(func(name string, _ backend.CollectionID) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Remove drops name from the registry and returns the id it used to map
// to, so the caller can instruct the backend to drop that id's data. An
// empty name can't be removed from the registry since it was never in
// it; Remove reports backend.DefaultCollection so the caller clears its
// data while its id is preserved.
func (r *Registry) Remove(name string) (backend.CollectionID, error) {
	if name == "" {
		return backend.DefaultCollection, nil
	}
	id, ok := r.byName.LoadAndDelete(name)
	if !ok {
		return 0, fmt.Errorf("collection: %q not found", name)
	}
	return id, nil
}

// Reset drops every named collection, leaving only the default. Used by
// the control channel's reset command.
func (r *Registry) Reset() {
	r.byName.Range(func(name string, _ backend.CollectionID) bool {
		r.byName.Delete(name)
		return true
	})
}
