// Package rpc provides remote access to a backend.Backend over the
// network. It is the communication layer between an engine.DB and a
// remote store fronting one of the same backend implementations used
// locally (memstore, pebblestore).
//
// The package is organized into several subpackages:
//
//   - common: the BatchMessage wire protocol and client/server configuration.
//
//   - transport: pluggable network transports (TCP, Unix sockets).
//
//   - serializer: BatchMessage encoding (Binary, JSON, GOB).
//
//   - client: NewRemoteBackend, a backend.Backend implementation that
//     forwards every call over the wire.
//
//   - server: NewRPCServer, dispatching decoded requests onto a local
//     backend.Backend.
package rpc
