package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rickgao/auctionhouse/internal/model"
)

// Plain-text bid responses.
const (
	BidSuccess           = "Success: Your bid has been placed!"
	BidInsufficientFunds = "Error: Insufficient funds."
	BidAuctionNotFound   = "Error: Auction not found."
	BidAuctionEnded      = "Error: Auction has ended."
	BidTooLow            = "Error: Your bid must be higher than the current highest bid."
	BidInvalidRequest    = "Error: Invalid bid request."
)

const (
	bidLimitPrefix = "Error: You have reached the maximum of "
	bidLimitSuffix = " bids for this item."
)

// BidLimitText is the limit rejection for a per-bidder limit of maxBids.
func BidLimitText(maxBids int) string {
	return fmt.Sprintf("%s%d%s", bidLimitPrefix, maxBids, bidLimitSuffix)
}

// BidText returns the plain-text response for a bid outcome. maxBids is the
// per-bidder limit in force; zero or less means model.MaxBidsPerBidder.
func BidText(o model.Outcome, maxBids int) string {
	switch o {
	case model.OutcomeSuccess:
		return BidSuccess
	case model.OutcomeInsufficientFunds:
		return BidInsufficientFunds
	case model.OutcomeAuctionNotFound:
		return BidAuctionNotFound
	case model.OutcomeAuctionEnded:
		return BidAuctionEnded
	case model.OutcomeBidTooLow:
		return BidTooLow
	case model.OutcomeBidLimitExceeded:
		if maxBids <= 0 {
			maxBids = model.MaxBidsPerBidder
		}
		return BidLimitText(maxBids)
	default:
		return BidInvalidRequest
	}
}

// OutcomeFromText reverses BidText. Unrecognized text maps to OutcomeUnknown.
func OutcomeFromText(text string) model.Outcome {
	switch text {
	case BidSuccess:
		return model.OutcomeSuccess
	case BidInsufficientFunds:
		return model.OutcomeInsufficientFunds
	case BidAuctionNotFound:
		return model.OutcomeAuctionNotFound
	case BidAuctionEnded:
		return model.OutcomeAuctionEnded
	case BidTooLow:
		return model.OutcomeBidTooLow
	}
	if n, ok := strings.CutPrefix(text, bidLimitPrefix); ok {
		if n, ok = strings.CutSuffix(n, bidLimitSuffix); ok {
			if _, err := strconv.Atoi(n); err == nil {
				return model.OutcomeBidLimitExceeded
			}
		}
	}
	return model.OutcomeUnknown
}
