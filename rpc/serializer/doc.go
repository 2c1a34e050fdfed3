// Package serializer converts BatchMessage values to and from bytes for
// the wire.
//
//   - binarySerializerImpl: custom flag-gated binary format, smallest
//     payload and fastest for production use.
//
//   - jsonSerializerImpl: human-readable, useful for debugging.
//
//   - gobSerializerImpl: Go's built-in gob encoding, offered for parity
//     with the binary and JSON formats but with larger payloads.
//
// All implementations are stateless and safe for concurrent use.
package serializer
