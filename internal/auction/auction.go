package auction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
)

// Publisher receives state-change notifications.
type Publisher interface {
	Publish(ev model.Event)
}

// Settler debits the winner at settlement time.
type Settler interface {
	CreditWin(name, itemName string, cost decimal.Decimal) bool
}

// Config holds auction engine settings.
type Config struct {
	TickInterval     time.Duration // Wall time per countdown second (default: 1s)
	MaxBidsPerBidder int           // Accepted bids per participant (default: 10)
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval:     time.Second,
		MaxBidsPerBidder: model.MaxBidsPerBidder,
	}
}

// Params describes a new auction.
type Params struct {
	ID              int
	ItemName        string
	StartPrice      decimal.Decimal
	DurationSeconds int
}

// Validate checks the creation constraints.
func (p Params) Validate() error {
	if strings.TrimSpace(p.ItemName) == "" {
		return fmt.Errorf("%w: item name is required", model.ErrInvalidAuctionParameters)
	}
	if p.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", model.ErrInvalidAuctionParameters, p.DurationSeconds)
	}
	if p.StartPrice.IsNegative() {
		return fmt.Errorf("%w: start price must not be negative, got %s", model.ErrInvalidAuctionParameters, p.StartPrice)
	}
	return nil
}

// Auction is one item's lifecycle: countdown, high bid, settlement.
type Auction struct {
	id         int
	itemName   string
	startPrice decimal.Decimal
	createdAt  time.Time

	cfg     Config
	settler Settler
	pub     Publisher
	logger  *slog.Logger

	// Guarded by mu.
	mu            sync.Mutex
	highestBid    decimal.Decimal
	highestBidder string
	remaining     int
	active        bool
	closed        bool // ended without settlement
	settled       bool // settler has returned for this auction
	bidCounts     map[string]int
	endedAt       time.Time

	done chan struct{}
}

// New validates params and builds an active auction. The countdown does
// not start until Run is called.
func New(p Params, cfg Config, settler Settler, pub Publisher, logger *slog.Logger) (*Auction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.MaxBidsPerBidder <= 0 {
		cfg.MaxBidsPerBidder = model.MaxBidsPerBidder
	}

	return &Auction{
		id:         p.ID,
		itemName:   p.ItemName,
		startPrice: p.StartPrice,
		createdAt:  time.Now().UTC(),
		cfg:        cfg,
		settler:    settler,
		pub:        pub,
		logger:     logger,
		highestBid: p.StartPrice,
		remaining:  p.DurationSeconds,
		active:     true,
		bidCounts:  make(map[string]int),
		done:       make(chan struct{}),
	}, nil
}

// ID returns the auction ID.
func (a *Auction) ID() int {
	return a.id
}

// ItemName returns the item label.
func (a *Auction) ItemName() string {
	return a.itemName
}

// IsActive reports whether the auction still accepts bids.
func (a *Auction) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Done is closed once the countdown goroutine has settled and exited.
func (a *Auction) Done() <-chan struct{} {
	return a.done
}

// Snapshot returns a consistent copy of the auction state.
func (a *Auction) Snapshot() model.AuctionSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// PlaceBid accepts amount from bidder if the auction is running, the amount
// beats the current high bid and the bidder is under the bid limit.
func (a *Auction) PlaceBid(bidder string, amount decimal.Decimal) error {
	bidder = strings.TrimSpace(bidder)

	a.mu.Lock()
	if !a.active || a.remaining <= 0 {
		a.mu.Unlock()
		return model.ErrAuctionEnded
	}
	if amount.LessThanOrEqual(a.highestBid) {
		a.mu.Unlock()
		return model.ErrBidTooLow
	}
	count := a.bidCounts[bidder]
	if count >= a.cfg.MaxBidsPerBidder {
		a.mu.Unlock()
		return model.ErrBidLimitExceeded
	}

	a.highestBid = amount
	a.highestBidder = bidder
	a.bidCounts[bidder] = count + 1
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.logger.Debug("bid accepted",
		"auction_id", a.id,
		"bidder", bidder,
		"amount", amount.StringFixed(2),
		"bid_count", count+1,
	)
	a.publish(model.Event{Kind: model.EventBid, Bidder: bidder, Amount: amount}, snap)
	return nil
}

// BidCount returns how many bids bidder has had accepted.
func (a *Auction) BidCount(bidder string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bidCounts[strings.TrimSpace(bidder)]
}

// Stop forces the countdown to zero. Settlement happens on the countdown
// goroutine at its next tick. Returns false if already ended or stopping.
func (a *Auction) Stop() bool {
	a.mu.Lock()
	if !a.active || a.remaining == 0 {
		a.mu.Unlock()
		return false
	}
	a.remaining = 0
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.logger.Info("auction stop requested", "auction_id", a.id, "item", a.itemName)
	a.publish(model.Event{Kind: model.EventStopped}, snap)
	return true
}

// Run is the countdown goroutine. It returns after settlement when the
// countdown reaches zero. Cancelling ctx closes the auction unsold, unless a
// stop was already requested, in which case it settles as a stop would.
func (a *Auction) Run(ctx context.Context) {
	defer close(a.done)
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("auction countdown panicked",
				"auction_id", a.id,
				"panic", r,
			)
			a.abort()
		}
	}()

	timer := time.NewTimer(a.cfg.TickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return
		case <-timer.C:
		}

		if a.step() {
			return
		}
		timer.Reset(a.cfg.TickInterval)
	}
}

// step performs one tick. Returns true once the auction has ended.
func (a *Auction) step() bool {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return true
	}

	ticked := false
	if a.remaining > 0 {
		a.remaining--
		ticked = true
	}
	remaining := a.remaining
	snap := a.snapshotLocked()
	a.mu.Unlock()

	if ticked {
		a.publish(model.Event{Kind: model.EventTick}, snap)
	}
	if remaining > 0 {
		return false
	}

	a.end()
	return true
}

// end deactivates the auction and settles it. Only the caller that flips
// active performs settlement, so it runs at most once.
func (a *Auction) end() {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return
	}
	a.active = false
	a.remaining = 0
	a.endedAt = time.Now().UTC()
	winner := a.highestBidder
	price := a.highestBid
	snap := a.snapshotLocked()
	a.mu.Unlock()

	paid := a.settle(winner, price)
	a.mu.Lock()
	a.settled = true
	a.mu.Unlock()
	a.publish(model.Event{Kind: model.EventSettled, Bidder: winner, Amount: price, Paid: paid}, snap)
}

// shutdown ends the auction on ctx cancellation. A pending stop still
// settles; a running countdown closes with nobody debited.
func (a *Auction) shutdown() {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return
	}
	if a.remaining == 0 {
		a.mu.Unlock()
		a.logger.Info("settling stopped auction on shutdown", "auction_id", a.id)
		a.end()
		return
	}
	a.active = false
	a.closed = true
	a.remaining = 0
	a.endedAt = time.Now().UTC()
	bidder := a.highestBidder
	price := a.highestBid
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.logger.Info("auction closed by shutdown",
		"auction_id", a.id,
		"item", a.itemName,
		"high_bidder", bidder,
		"high_bid", price.StringFixed(2),
	)
	a.publish(model.Event{Kind: model.EventClosed, Bidder: bidder, Amount: price}, snap)
}

// settle credits the winner, if any. Insufficient funds at this point leave
// the item unpaid and unrecorded.
func (a *Auction) settle(winner string, price decimal.Decimal) bool {
	if winner == "" {
		a.logger.Info("auction ended without bids", "auction_id", a.id, "item", a.itemName)
		return false
	}
	if a.settler == nil {
		return false
	}

	if !a.settler.CreditWin(winner, a.itemName, price) {
		a.logger.Warn("winner cannot cover winning bid, item not recorded",
			"auction_id", a.id,
			"item", a.itemName,
			"bidder", winner,
			"amount", price.StringFixed(2),
		)
		return false
	}

	a.logger.Info("auction won",
		"auction_id", a.id,
		"item", a.itemName,
		"bidder", winner,
		"amount", price.StringFixed(2),
	)
	return true
}

// abort deactivates the auction after a failure in the countdown goroutine.
// Unless the settler already returned, the auction is closed unsold.
func (a *Auction) abort() {
	a.mu.Lock()
	a.active = false
	a.remaining = 0
	if a.endedAt.IsZero() {
		a.endedAt = time.Now().UTC()
	}
	if a.settled || a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	bidder := a.highestBidder
	price := a.highestBid
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(model.Event{Kind: model.EventAborted, Bidder: bidder, Amount: price}, snap)
}

func (a *Auction) publish(ev model.Event, snap model.AuctionSnapshot) {
	if a.pub == nil {
		return
	}
	ev.AuctionID = a.id
	ev.Auction = snap
	a.pub.Publish(ev)
}

// snapshotLocked copies state. Caller must hold mu.
func (a *Auction) snapshotLocked() model.AuctionSnapshot {
	bidder := a.highestBidder
	if bidder == "" {
		bidder = model.NoBidder
	}
	status := model.StatusFor(a.active, a.highestBidder)
	if a.closed {
		status = model.StatusClosed
	}
	return model.AuctionSnapshot{
		ID:                a.id,
		ItemName:          a.itemName,
		StartPrice:        a.startPrice,
		HighestBid:        a.highestBid,
		HighestBidderName: bidder,
		RemainingSeconds:  a.remaining,
		Active:            a.active,
		Status:            status,
		CreatedAt:         a.createdAt,
		EndedAt:           a.endedAt,
	}
}
