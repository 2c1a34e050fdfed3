// Package transport defines the interfaces every RPC transport must
// satisfy, plus a base implementation (base) sharing framing, connection
// pooling, retries and the worker pool across the tcp and unix
// connectors.
package transport
