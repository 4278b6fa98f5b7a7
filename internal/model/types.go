package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

// MaxBidsPerBidder is the number of accepted bids one participant may place
// on a single auction.
const MaxBidsPerBidder = 10

// NoBidder is the display name used when an auction has no highest bidder.
const NoBidder = "None"

// Status strings reported for an auction.
const (
	StatusActive      = "Active"
	StatusEndedNoBids = "Ended (No Bids)"
	StatusClosed      = "Closed (Not Sold)"
	statusWonPrefix   = "Won by "
)

// StartingBalance is the wallet every participant is created with.
var StartingBalance = decimal.RequireFromString("10000.00")

// -----------------------------------------------------------------------------
// Auction Types
// -----------------------------------------------------------------------------

// AuctionSnapshot is a point-in-time copy of an auction's state.
type AuctionSnapshot struct {
	ID                int
	ItemName          string
	StartPrice        decimal.Decimal
	HighestBid        decimal.Decimal
	HighestBidderName string // NoBidder when nobody has bid
	RemainingSeconds  int
	Active            bool
	Status            string
	CreatedAt         time.Time
	EndedAt           time.Time // zero while active
}

// HasBidder reports whether the auction has an accepted bid.
func (s AuctionSnapshot) HasBidder() bool {
	return s.HighestBidderName != NoBidder && s.HighestBidderName != ""
}

// StatusFor derives the status string from the active flag and bidder.
func StatusFor(active bool, bidder string) string {
	if active {
		return StatusActive
	}
	if bidder != "" {
		return statusWonPrefix + bidder
	}
	return StatusEndedNoBids
}

// -----------------------------------------------------------------------------
// Ledger Types
// -----------------------------------------------------------------------------

// WonItem is one settled auction recorded against a participant.
type WonItem struct {
	ItemName string
	Cost     decimal.Decimal
}

// BidderStatus reports a participant's current wallet.
type BidderStatus struct {
	Name   string
	Wallet decimal.Decimal
}
