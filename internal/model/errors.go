package model

import "errors"

// Bid and lifecycle errors. None of them are fatal; callers present them.
var (
	ErrAuctionNotFound          = errors.New("auction not found")
	ErrAuctionEnded             = errors.New("auction has ended")
	ErrBidTooLow                = errors.New("bid must be higher than the current highest bid")
	ErrBidLimitExceeded         = errors.New("bid limit reached for this auction")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrInvalidAuctionParameters = errors.New("invalid auction parameters")
)

// Outcome is the contract name of a bid result.
type Outcome string

// Bid outcomes.
const (
	OutcomeSuccess           Outcome = "Success"
	OutcomeInsufficientFunds Outcome = "InsufficientFunds"
	OutcomeAuctionEnded      Outcome = "AuctionEnded"
	OutcomeBidTooLow         Outcome = "BidTooLow"
	OutcomeBidLimitExceeded  Outcome = "BidLimitExceeded"
	OutcomeAuctionNotFound   Outcome = "AuctionNotFound"
	OutcomeUnknown           Outcome = "Unknown"
)

// OutcomeOf maps an error returned by PlaceBid to its outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, ErrAuctionEnded):
		return OutcomeAuctionEnded
	case errors.Is(err, ErrBidTooLow):
		return OutcomeBidTooLow
	case errors.Is(err, ErrBidLimitExceeded):
		return OutcomeBidLimitExceeded
	case errors.Is(err, ErrAuctionNotFound):
		return OutcomeAuctionNotFound
	default:
		return OutcomeUnknown
	}
}
