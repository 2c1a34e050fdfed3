// Package backend defines the storage backend capability interface: the
// surface every concrete store (in-memory, persistent-local, remote) must
// provide so the batch and transaction layers can stay backend-agnostic.
package backend
