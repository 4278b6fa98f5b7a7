// Package ledger tracks participant wallets and won items.
//
// Entries are created lazily on first reference and never removed. Each
// entry carries its own lock; the ledger map lock is only held to find or
// insert entries, never while an entry lock is held.
package ledger
