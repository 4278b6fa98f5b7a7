package registry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/notify"
)

// ErrClosed is returned by CreateAuction after Stop.
var ErrClosed = errors.New("registry closed")

// Registry manages auctions and participants.
type Registry interface {
	// Start ties the countdown goroutines to ctx. Cancelling ctx closes
	// every running auction unsold.
	Start(ctx context.Context) error

	// Stop closes running auctions unsold, waits for their countdowns and
	// closes the notification broker.
	Stop(ctx context.Context) error

	// CreateAuction validates the parameters, assigns the next id and starts
	// the countdown.
	CreateAuction(itemName string, durationSeconds int, startPrice decimal.Decimal) (int, error)

	// StopAuction forces the countdown of an active auction to zero.
	// Unknown or ended auctions are ignored.
	StopAuction(id int)

	// PlaceBid checks the bidder's wallet, then routes the bid to the auction.
	PlaceBid(id int, bidderName string, amount decimal.Decimal) error

	// ActiveAuctions returns snapshots of auctions still accepting bids, by id.
	ActiveAuctions() []model.AuctionSnapshot

	// AllAuctions returns snapshots of every auction ever created, by id.
	AllAuctions() []model.AuctionSnapshot

	// GetAuction returns one auction's snapshot.
	GetAuction(id int) (model.AuctionSnapshot, bool)

	// BidderStatus returns the participant's wallet, creating the entry.
	BidderStatus(name string) model.BidderStatus

	// WonItems returns the participant's wins in settlement order.
	WonItems(name string) []model.WonItem

	// BidLimit is the accepted-bid limit per participant per auction.
	BidLimit() int

	// Subscribe returns a stream of every state change.
	Subscribe() *notify.Subscription
}
