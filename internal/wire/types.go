package wire

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount encoded as a two-decimal JSON number.
type Money decimal.Decimal

// MarshalJSON renders the amount rounded to cents, unquoted.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse money %q: %w", data, err)
	}
	*m = Money(d)
	return nil
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// Auction is the wire form of an auction snapshot.
type Auction struct {
	ID            int    `json:"id"`
	ItemName      string `json:"itemName"`
	StartPrice    Money  `json:"startPrice"`
	HighestBid    Money  `json:"highestBid"`
	HighestBidder string `json:"highestBidder"`
	RemainingTime int    `json:"remainingTime"`
	Status        string `json:"status"`
}

// WonItem is the wire form of a won item.
type WonItem struct {
	ItemName string `json:"itemName"`
	Cost     Money  `json:"cost"`
}

// BidderStatus is the wire form of a participant's wallet.
type BidderStatus struct {
	Name   string `json:"name"`
	Wallet Money  `json:"wallet"`
}

// Event is the wire form of a notification.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	AuctionID int       `json:"auctionId"`
	At        time.Time `json:"at"`
	Auction   Auction   `json:"auction"`
	Bidder    string    `json:"bidder,omitempty"`
	Amount    *Money    `json:"amount,omitempty"`
	Paid      *bool     `json:"paid,omitempty"`
}

// CreateAuctionRequest is the admin create payload.
type CreateAuctionRequest struct {
	ItemName        string `json:"itemName"`
	DurationSeconds int    `json:"durationSeconds"`
	StartPrice      Money  `json:"startPrice"`
}

// CreateAuctionResponse carries the assigned auction ID.
type CreateAuctionResponse struct {
	ID int `json:"id"`
}

// ErrorResponse is returned with 4xx/5xx JSON responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
