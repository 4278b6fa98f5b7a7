// Package registry owns every auction and the participant ledger.
//
// It is the single entry point for the core operations: create and stop
// auctions, route bids, and read point-in-time snapshots. Auctions are
// append-only and indexed by their id; ids are dense and start at 1.
//
// Lock order: the registry lock guards only the auction slice and the id
// counter and is never held while an auction or ledger lock is taken.
package registry
