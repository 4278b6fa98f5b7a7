package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		active bool
		bidder string
		want   string
	}{
		{"active without bids", true, "", "Active"},
		{"active with bidder", true, "alice", "Active"},
		{"ended with bidder", false, "alice", "Won by alice"},
		{"ended without bids", false, "", "Ended (No Bids)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.active, tt.bidder); got != tt.want {
				t.Errorf("StatusFor(%v, %q) = %q, want %q", tt.active, tt.bidder, got, tt.want)
			}
		})
	}
}

func TestAuctionSnapshot_HasBidder(t *testing.T) {
	if (AuctionSnapshot{HighestBidderName: NoBidder}).HasBidder() {
		t.Error("HasBidder() = true for NoBidder, want false")
	}
	if !(AuctionSnapshot{HighestBidderName: "bob"}).HasBidder() {
		t.Error("HasBidder() = false for bob, want true")
	}
}

func TestStartingBalance(t *testing.T) {
	if got := StartingBalance.StringFixed(2); got != "10000.00" {
		t.Errorf("StartingBalance = %s, want 10000.00", got)
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeSuccess},
		{ErrInsufficientFunds, OutcomeInsufficientFunds},
		{ErrAuctionEnded, OutcomeAuctionEnded},
		{ErrBidTooLow, OutcomeBidTooLow},
		{ErrBidLimitExceeded, OutcomeBidLimitExceeded},
		{ErrAuctionNotFound, OutcomeAuctionNotFound},
		{fmt.Errorf("auction 3: %w", ErrBidTooLow), OutcomeBidTooLow},
		{errors.New("boom"), OutcomeUnknown},
	}

	for _, tt := range tests {
		if got := OutcomeOf(tt.err); got != tt.want {
			t.Errorf("OutcomeOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
