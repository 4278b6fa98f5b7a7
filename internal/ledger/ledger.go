package ledger

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
)

// Ledger holds one Entry per participant name.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	startingBalance decimal.Decimal
}

// Entry is a single participant's wallet and win history.
type Entry struct {
	name string

	mu       sync.Mutex
	wallet   decimal.Decimal
	wonItems []model.WonItem
}

// New creates a ledger whose entries start with the given balance.
func New(startingBalance decimal.Decimal) *Ledger {
	return &Ledger{
		entries:         make(map[string]*Entry),
		startingBalance: startingBalance,
	}
}

// StartingBalance returns the wallet new entries are created with.
func (l *Ledger) StartingBalance() decimal.Decimal {
	return l.startingBalance
}

// NormalizeName trims surrounding whitespace from a participant name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// GetOrCreate returns the entry for name, creating it with the starting
// balance on first reference.
func (l *Ledger) GetOrCreate(name string) *Entry {
	name = NormalizeName(name)

	l.mu.RLock()
	e, ok := l.entries[name]
	l.mu.RUnlock()
	if ok {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check: another goroutine may have inserted while we upgraded.
	if e, ok := l.entries[name]; ok {
		return e
	}
	e = &Entry{name: name, wallet: l.startingBalance}
	l.entries[name] = e
	return e
}

// Lookup returns the entry for name without creating it.
func (l *Ledger) Lookup(name string) (*Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[NormalizeName(name)]
	return e, ok
}

// CanAfford reports whether name's wallet covers amount right now.
// Advisory only: nothing is reserved.
func (l *Ledger) CanAfford(name string, amount decimal.Decimal) bool {
	return l.GetOrCreate(name).CanAfford(amount)
}

// CreditWin debits cost and records the item if the wallet covers it.
// Returns false, leaving the entry untouched, when funds are insufficient.
func (l *Ledger) CreditWin(name, itemName string, cost decimal.Decimal) bool {
	return l.GetOrCreate(name).CreditWin(itemName, cost)
}

// Snapshot returns name's current wallet, creating the entry if needed.
func (l *Ledger) Snapshot(name string) model.BidderStatus {
	return l.GetOrCreate(name).Snapshot()
}

// WonItems returns name's won items in settlement order. Unknown names
// yield an empty slice and are not created.
func (l *Ledger) WonItems(name string) []model.WonItem {
	e, ok := l.Lookup(name)
	if !ok {
		return []model.WonItem{}
	}
	return e.WonItems()
}

// Len returns the number of known participants.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Name returns the normalized participant name.
func (e *Entry) Name() string {
	return e.name
}

// CanAfford reports whether the wallet is at least amount.
func (e *Entry) CanAfford(amount decimal.Decimal) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wallet.GreaterThanOrEqual(amount)
}

// CreditWin debits cost and appends the item when the wallet covers it.
func (e *Entry) CreditWin(itemName string, cost decimal.Decimal) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.wallet.LessThan(cost) {
		return false
	}
	e.wallet = e.wallet.Sub(cost)
	e.wonItems = append(e.wonItems, model.WonItem{ItemName: itemName, Cost: cost})
	return true
}

// Snapshot returns the name and wallet.
func (e *Entry) Snapshot() model.BidderStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return model.BidderStatus{Name: e.name, Wallet: e.wallet}
}

// WonItems returns a copy of the won items.
func (e *Entry) WonItems() []model.WonItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.WonItem, len(e.wonItems))
	copy(out, e.wonItems)
	return out
}
