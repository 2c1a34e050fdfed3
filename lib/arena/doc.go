// Package arena implements the caller-reused scratch buffer that batch
// operations write their results into, and the length-prefixed value tape
// layout that lives inside it.
package arena
