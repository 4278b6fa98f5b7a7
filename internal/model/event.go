package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind names the state change an Event reports.
type EventKind string

// Event kinds published by the auction engine.
const (
	EventCreated EventKind = "created"
	EventTick    EventKind = "tick"
	EventBid     EventKind = "bid"
	EventStopped EventKind = "stopped"
	EventSettled EventKind = "settled"
	EventClosed  EventKind = "closed"  // shut down before the countdown ran out; nothing sold
	EventAborted EventKind = "aborted" // countdown goroutine failed; nothing sold
)

// Event is a state-change notification for one auction.
type Event struct {
	ID        uuid.UUID
	Kind      EventKind
	AuctionID int
	Auction   AuctionSnapshot // state right after the change
	At        time.Time

	// Bid and settlement details (zero for other kinds). Closed and
	// aborted events carry the high bid at the time, never Paid.
	Bidder string
	Amount decimal.Decimal
	Paid   bool // settled only: the winner's wallet covered the cost
}
