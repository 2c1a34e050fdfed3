// Package memstore implements the in-memory backend variant: a
// btree-ordered key space per collection, so ascending range scans are a
// native operation rather than a reshuffle of a hash-sharded map.
package memstore
