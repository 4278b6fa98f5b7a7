package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Schema creates the journal table.
const Schema = `
CREATE TABLE IF NOT EXISTS auction_journal (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL,
	auction_id  INTEGER NOT NULL,
	item_name   TEXT NOT NULL,
	bidder      TEXT,
	amount      NUMERIC(18, 2) NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL
)`

const insertEntry = `
	INSERT INTO auction_journal (id, kind, auction_id, item_name, bidder, amount, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO NOTHING
`

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Close()
}

// PostgresStore writes entries into auction_journal.
type PostgresStore struct {
	db DB
}

// NewPostgresStore wraps a pool. Call EnsureSchema once at startup.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the journal table if needed.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	batch := &pgx.Batch{}
	batch.Queue(Schema)
	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	if _, err := results.Exec(); err != nil {
		return fmt.Errorf("create auction_journal: %w", err)
	}
	return nil
}

// Append inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (s *PostgresStore) Append(ctx context.Context, entries []Entry) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntry, insertArgs(e)...)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		ct, err := results.Exec()
		if err != nil {
			return conflicts, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}

// Close closes the underlying pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// insertArgs builds the positional parameters for insertEntry.
func insertArgs(e Entry) []any {
	var bidder any
	if e.Bidder != "" {
		bidder = e.Bidder
	}
	return []any{
		e.ID.String(),
		string(e.Kind),
		e.AuctionID,
		e.ItemName,
		bidder,
		e.Amount.StringFixed(2),
		e.At.UTC(),
	}
}
