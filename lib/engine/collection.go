package engine

import (
	"context"

	"github.com/unum-cloud/ukv-go/lib/backend"
)

// CollectionOpen returns name's id, creating one if it doesn't already
// exist. An empty name always yields the default collection.
func (db *DB) CollectionOpen(name string) backend.CollectionID {
	return db.regs.Open(name)
}

// CollectionList returns every named (non-default) collection.
func (db *DB) CollectionList() []string {
	return db.regs.List()
}

// CollectionRemove drops name and all of its data. An empty name can't
// be removed — instead it clears the default collection's keys while
// preserving its id, per spec's null-name clearing semantics.
func (db *DB) CollectionRemove(ctx context.Context, name string) error {
	id, err := db.regs.Remove(name)
	if err != nil {
		return NewError(KindNotFound, "%v", err)
	}
	if err := db.be.DropCollection(ctx, id); err != nil {
		return NewError(KindIO, "collection_remove: %v", err)
	}
	return nil
}
