// Package txn implements the transaction manager: generation-stamped
// transactions with optional snapshot isolation and read-set tracking,
// committed via optimistic concurrency control against a backend.
package txn
