// Package enginetest provides a conformance suite run against every
// backend variant, so memory, pebble, and remote backends are provably
// interchangeable behind the same capability contract.
package enginetest
