// Package pebblestore implements the persistent-local backend variant on
// top of cockroachdb/pebble, encoding keys so Pebble's natural
// byte-lexicographic order matches ascending numeric key order across the
// signed int64 range.
package pebblestore
