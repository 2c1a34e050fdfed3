// Package collection implements the collection registry: the mapping
// from a collection's name to its stable 64-bit handle, including the
// implicit default anonymous collection.
package collection
