package journal

import "context"

// Store persists journal entries. Entries whose ID already exists are
// skipped and counted as conflicts.
type Store interface {
	Append(ctx context.Context, entries []Entry) (conflicts int, err error)
	Close() error
}

// Discard is a Store that drops everything.
type Discard struct{}

// Append implements Store.
func (Discard) Append(ctx context.Context, entries []Entry) (int, error) { return 0, nil }

// Close implements Store.
func (Discard) Close() error { return nil }
