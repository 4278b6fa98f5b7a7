package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/auction"
	"github.com/rickgao/auctionhouse/internal/ledger"
	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/notify"
)

// Config holds Auction Registry configuration.
type Config struct {
	Auction         auction.Config
	StartingBalance decimal.Decimal
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Auction:         auction.DefaultConfig(),
		StartingBalance: model.StartingBalance,
	}
}

// registryImpl implements the Registry interface.
type registryImpl struct {
	cfg    Config
	ledger *ledger.Ledger
	broker *notify.Broker
	logger *slog.Logger

	state *registryState

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry creates a new Auction Registry. A nil ledger is built from
// cfg.StartingBalance; a nil broker gets defaults.
func NewRegistry(cfg Config, l *ledger.Ledger, broker *notify.Broker, logger *slog.Logger) Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Auction.MaxBidsPerBidder <= 0 {
		cfg.Auction.MaxBidsPerBidder = model.MaxBidsPerBidder
	}
	if l == nil {
		l = ledger.New(cfg.StartingBalance)
	}
	if broker == nil {
		broker = notify.NewBroker(notify.DefaultConfig(), logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &registryImpl{
		cfg:    cfg,
		ledger: l,
		broker: broker,
		logger: logger,
		state:  newState(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start links the countdown lifetime to ctx.
func (r *registryImpl) Start(ctx context.Context) error {
	context.AfterFunc(ctx, r.cancel)

	r.logger.Info("auction registry started",
		"tick_interval", r.cfg.Auction.TickInterval,
		"starting_balance", r.ledger.StartingBalance().StringFixed(2),
		"max_bids_per_bidder", r.cfg.Auction.MaxBidsPerBidder,
	)
	return nil
}

// Stop gracefully shuts down.
func (r *registryImpl) Stop(ctx context.Context) error {
	r.state.close()
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.broker.Close()
		r.logger.Info("auction registry stopped", "auctions", r.state.len())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CreateAuction assigns the next id and starts the auction's countdown.
func (r *registryImpl) CreateAuction(itemName string, durationSeconds int, startPrice decimal.Decimal) (int, error) {
	a, err := r.state.add(func(id int) (*auction.Auction, error) {
		a, err := auction.New(auction.Params{
			ID:              id,
			ItemName:        itemName,
			StartPrice:      startPrice,
			DurationSeconds: durationSeconds,
		}, r.cfg.Auction, r.ledger, r.broker, r.logger)
		if err != nil {
			return nil, err
		}
		// Counted under the state lock so Stop never waits on a partial set.
		r.wg.Add(1)
		return a, nil
	})
	if err != nil {
		return 0, err
	}

	snap := a.Snapshot()
	r.broker.Publish(model.Event{Kind: model.EventCreated, AuctionID: snap.ID, Auction: snap})

	go func() {
		defer r.wg.Done()
		a.Run(r.ctx)
	}()

	r.logger.Info("auction created",
		"auction_id", snap.ID,
		"item", snap.ItemName,
		"start_price", snap.StartPrice.StringFixed(2),
		"duration_seconds", durationSeconds,
	)
	return snap.ID, nil
}

// StopAuction stops the auction if found and active.
func (r *registryImpl) StopAuction(id int) {
	a, ok := r.state.get(id)
	if !ok {
		r.logger.Debug("stop requested for unknown auction", "auction_id", id)
		return
	}
	a.Stop()
}

// PlaceBid runs the advisory funds check before touching the auction.
func (r *registryImpl) PlaceBid(id int, bidderName string, amount decimal.Decimal) error {
	if !r.ledger.CanAfford(bidderName, amount) {
		r.logger.Debug("bid rejected",
			"auction_id", id,
			"bidder", ledger.NormalizeName(bidderName),
			"amount", amount.StringFixed(2),
			"reason", "insufficient funds",
		)
		return model.ErrInsufficientFunds
	}

	a, ok := r.state.get(id)
	if !ok {
		return model.ErrAuctionNotFound
	}
	return a.PlaceBid(bidderName, amount)
}

// ActiveAuctions returns snapshots of active auctions in id order.
func (r *registryImpl) ActiveAuctions() []model.AuctionSnapshot {
	auctions := r.state.list()
	result := make([]model.AuctionSnapshot, 0, len(auctions))
	for _, a := range auctions {
		if s := a.Snapshot(); s.Active {
			result = append(result, s)
		}
	}
	return result
}

// AllAuctions returns snapshots of every auction in id order.
func (r *registryImpl) AllAuctions() []model.AuctionSnapshot {
	auctions := r.state.list()
	result := make([]model.AuctionSnapshot, 0, len(auctions))
	for _, a := range auctions {
		result = append(result, a.Snapshot())
	}
	return result
}

// GetAuction returns a specific auction by id.
func (r *registryImpl) GetAuction(id int) (model.AuctionSnapshot, bool) {
	a, ok := r.state.get(id)
	if !ok {
		return model.AuctionSnapshot{}, false
	}
	return a.Snapshot(), true
}

// BidderStatus returns the participant's wallet.
func (r *registryImpl) BidderStatus(name string) model.BidderStatus {
	return r.ledger.Snapshot(name)
}

// WonItems returns the participant's wins.
func (r *registryImpl) WonItems(name string) []model.WonItem {
	return r.ledger.WonItems(name)
}

// BidLimit returns the per-participant bid limit.
func (r *registryImpl) BidLimit() int {
	return r.cfg.Auction.MaxBidsPerBidder
}

// Subscribe returns a new notification subscription.
func (r *registryImpl) Subscribe() *notify.Subscription {
	return r.broker.Subscribe()
}
