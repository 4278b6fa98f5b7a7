package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
)

// Kind classifies a journal entry.
type Kind string

// Journal entry kinds.
const (
	KindCreated          Kind = "created"
	KindBid              Kind = "bid"
	KindStopped          Kind = "stopped"
	KindSettled          Kind = "settled"
	KindSettlementUnpaid Kind = "settlement_unpaid"
	KindEndedNoBids      Kind = "ended_no_bids"
	KindClosedByShutdown Kind = "closed_by_shutdown"
	KindAborted          Kind = "aborted"
)

// Entry is one audit record.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	AuctionID int             `json:"auction_id"`
	ItemName  string          `json:"item_name"`
	Bidder    string          `json:"bidder,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	At        time.Time       `json:"at"`
}

// FromEvent converts a notification into an entry. Ticks return false.
func FromEvent(ev model.Event) (Entry, bool) {
	e := Entry{
		ID:        ev.ID,
		AuctionID: ev.AuctionID,
		ItemName:  ev.Auction.ItemName,
		At:        ev.At,
	}

	switch ev.Kind {
	case model.EventCreated:
		e.Kind = KindCreated
		e.Amount = ev.Auction.StartPrice
	case model.EventBid:
		e.Kind = KindBid
		e.Bidder = ev.Bidder
		e.Amount = ev.Amount
	case model.EventStopped:
		e.Kind = KindStopped
		e.Amount = ev.Auction.HighestBid
	case model.EventSettled:
		switch {
		case ev.Bidder == "":
			e.Kind = KindEndedNoBids
			e.Amount = ev.Auction.HighestBid
		case ev.Paid:
			e.Kind = KindSettled
			e.Bidder = ev.Bidder
			e.Amount = ev.Amount
		default:
			e.Kind = KindSettlementUnpaid
			e.Bidder = ev.Bidder
			e.Amount = ev.Amount
		}
	case model.EventClosed:
		e.Kind = KindClosedByShutdown
		e.Bidder = ev.Bidder
		e.Amount = ev.Amount
	case model.EventAborted:
		e.Kind = KindAborted
		e.Bidder = ev.Bidder
		e.Amount = ev.Amount
	default:
		return Entry{}, false
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	return e, true
}
