// Package common defines the BatchMessage wire protocol and the
// client/server configuration structures shared by the rest of rpc.
//
// BatchMessage carries one whole batch operation per message: a PutBatch
// request holds every task's collection, key and value; a Scan response
// holds every returned key, value and version. This mirrors the engine's
// own batch-oriented operations rather than framing one message per key.
package common
