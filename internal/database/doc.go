// Package database provides the PostgreSQL connection pool used by the
// audit journal.
//
// Only auctiond opens a pool, and only when journal.driver is "postgres".
// Auction state itself lives in memory and is never read back.
package database
