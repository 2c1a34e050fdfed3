// Package cmd implements the command-line interface for dkv, the
// universal key-value engine. It provides a hierarchical command
// structure for running the RPC server and interacting with it as a
// client.
//
// The package is organized into several subpackages:
//
//   - serve: starts the RPC server fronting a local backend (memory or pebble)
//   - client: get/put/delete/scan/control commands against a running server
//   - util: shared flag, viper and RPC dial helpers (internal use)
//
// See dkv -help for a list of all commands.
package cmd
