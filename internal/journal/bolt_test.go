package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(kind Kind, at time.Time) Entry {
	return Entry{
		ID:        uuid.New(),
		Kind:      kind,
		AuctionID: 1,
		ItemName:  "Vase",
		Bidder:    "alice",
		Amount:    decimal.RequireFromString("150.00"),
		At:        at,
	}
}

func TestBoltStore_AppendAndForEach(t *testing.T) {
	s := newTestBolt(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Out of order on purpose; nanosecond differences must sort correctly.
	entries := []Entry{
		testEntry(KindSettled, base.Add(2*time.Second)),
		testEntry(KindCreated, base),
		testEntry(KindBid, base.Add(500*time.Nanosecond)),
	}

	conflicts, err := s.Append(context.Background(), entries)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if conflicts != 0 {
		t.Errorf("conflicts = %d, want 0", conflicts)
	}

	var kinds []Kind
	err = s.ForEach(func(e Entry) error {
		kinds = append(kinds, e.Kind)
		if !e.Amount.Equal(decimal.RequireFromString("150")) {
			t.Errorf("Amount = %s, want 150", e.Amount)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}

	want := []Kind{KindCreated, KindBid, KindSettled}
	if len(kinds) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("entries[%d].Kind = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestBoltStore_DuplicateIsConflict(t *testing.T) {
	s := newTestBolt(t)
	e := testEntry(KindBid, time.Now().UTC())

	if _, err := s.Append(context.Background(), []Entry{e}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	conflicts, err := s.Append(context.Background(), []Entry{e})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", conflicts)
	}

	n := 0
	s.ForEach(func(Entry) error { n++; return nil })
	if n != 1 {
		t.Errorf("stored entries = %d, want 1", n)
	}
}

func TestBoltStore_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	s.Append(context.Background(), []Entry{testEntry(KindBid, time.Now().UTC())})
	s.Close()

	s, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	n := 0
	s.ForEach(func(Entry) error { n++; return nil })
	if n != 1 {
		t.Errorf("stored entries = %d, want 1", n)
	}
}

func TestBoltStore_CancelledContext(t *testing.T) {
	s := newTestBolt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Append(ctx, []Entry{testEntry(KindBid, time.Now())}); err == nil {
		t.Error("Append with cancelled context: expected error")
	}
}
