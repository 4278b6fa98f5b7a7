// Package journal records auction activity into an append-only audit store.
//
// A Writer subscribes to the notification broker, converts bid, stop and
// settlement events into Entries, and flushes them in batches into a Store:
//   - PostgresStore: pgx.Batch inserts into auction_journal
//   - BoltStore: embedded file, one bucket keyed by time and entry ID
//
// Ticks are not journalled. The journal is never read back to rebuild
// auction state.
package journal
