package wire

import "github.com/rickgao/auctionhouse/internal/model"

// FromAuction converts a snapshot to its wire form.
func FromAuction(s model.AuctionSnapshot) Auction {
	bidder := s.HighestBidderName
	if bidder == "" {
		bidder = model.NoBidder
	}
	return Auction{
		ID:            s.ID,
		ItemName:      s.ItemName,
		StartPrice:    Money(s.StartPrice),
		HighestBid:    Money(s.HighestBid),
		HighestBidder: bidder,
		RemainingTime: s.RemainingSeconds,
		Status:        s.Status,
	}
}

// FromAuctions converts a slice of snapshots, never returning nil.
func FromAuctions(in []model.AuctionSnapshot) []Auction {
	out := make([]Auction, 0, len(in))
	for _, s := range in {
		out = append(out, FromAuction(s))
	}
	return out
}

// FromWonItems converts won items, never returning nil.
func FromWonItems(in []model.WonItem) []WonItem {
	out := make([]WonItem, 0, len(in))
	for _, w := range in {
		out = append(out, WonItem{ItemName: w.ItemName, Cost: Money(w.Cost)})
	}
	return out
}

// FromBidderStatus converts a wallet snapshot.
func FromBidderStatus(s model.BidderStatus) BidderStatus {
	return BidderStatus{Name: s.Name, Wallet: Money(s.Wallet)}
}

// FromEvent converts a notification.
func FromEvent(ev model.Event) Event {
	out := Event{
		ID:        ev.ID,
		Type:      string(ev.Kind),
		AuctionID: ev.AuctionID,
		At:        ev.At,
		Auction:   FromAuction(ev.Auction),
		Bidder:    ev.Bidder,
	}
	switch ev.Kind {
	case model.EventBid:
		amount := Money(ev.Amount)
		out.Amount = &amount
	case model.EventSettled, model.EventClosed, model.EventAborted:
		if ev.Bidder != "" {
			amount := Money(ev.Amount)
			paid := ev.Paid
			out.Amount = &amount
			out.Paid = &paid
		}
	}
	return out
}
