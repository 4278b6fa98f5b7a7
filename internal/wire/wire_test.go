package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
)

func TestMoney_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"150", "150.00"},
		{"9850.5", "9850.50"},
		{"0.125", "0.13"},
		{"0", "0.00"},
	}

	for _, tt := range tests {
		got, err := json.Marshal(Money(decimal.RequireFromString(tt.in)))
		if err != nil {
			t.Fatalf("Marshal(%s): %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMoney_UnmarshalJSON(t *testing.T) {
	for _, in := range []string{`12.50`, `"12.50"`, `12.5`} {
		var m Money
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		if !m.Decimal().Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("Unmarshal(%s) = %s, want 12.5", in, m.Decimal())
		}
	}

	var m Money
	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Error("expected error for non-numeric money")
	}
}

func TestFromAuction_FieldNames(t *testing.T) {
	s := model.AuctionSnapshot{
		ID:                1,
		ItemName:          "Vase",
		StartPrice:        decimal.RequireFromString("100"),
		HighestBid:        decimal.RequireFromString("100"),
		HighestBidderName: model.NoBidder,
		RemainingSeconds:  3,
		Active:            true,
		Status:            model.StatusActive,
	}

	data, err := json.Marshal(FromAuction(s))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"id":1,"itemName":"Vase","startPrice":100.00,"highestBid":100.00,"highestBidder":"None","remainingTime":3,"status":"Active"}`
	if string(data) != want {
		t.Errorf("json = %s\nwant   %s", data, want)
	}
}

func TestFromAuction_EmptyBidderBecomesNone(t *testing.T) {
	got := FromAuction(model.AuctionSnapshot{})
	if got.HighestBidder != "None" {
		t.Errorf("HighestBidder = %q, want %q", got.HighestBidder, "None")
	}
}

func TestFromCollections_NeverNil(t *testing.T) {
	if FromAuctions(nil) == nil {
		t.Error("FromAuctions(nil) returned nil")
	}
	if FromWonItems(nil) == nil {
		t.Error("FromWonItems(nil) returned nil")
	}

	data, _ := json.Marshal(FromWonItems(nil))
	if string(data) != "[]" {
		t.Errorf("json = %s, want []", data)
	}
}

func TestFromBidderStatus(t *testing.T) {
	data, err := json.Marshal(FromBidderStatus(model.BidderStatus{
		Name:   "alice",
		Wallet: decimal.RequireFromString("9850"),
	}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"name":"alice","wallet":9850.00}`; string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestFromEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.New()

	t.Run("tick has no amount", func(t *testing.T) {
		got := FromEvent(model.Event{ID: id, Kind: model.EventTick, AuctionID: 2, At: at})
		if got.Type != "tick" || got.AuctionID != 2 || got.ID != id {
			t.Errorf("got %+v", got)
		}
		if got.Amount != nil || got.Paid != nil {
			t.Error("tick should not carry amount/paid")
		}
	})

	t.Run("bid carries amount", func(t *testing.T) {
		got := FromEvent(model.Event{Kind: model.EventBid, Bidder: "bob", Amount: decimal.NewFromInt(5)})
		if got.Amount == nil || !got.Amount.Decimal().Equal(decimal.NewFromInt(5)) {
			t.Errorf("Amount = %v, want 5", got.Amount)
		}
		if got.Paid != nil {
			t.Error("bid should not carry paid")
		}
	})

	t.Run("settled with winner carries paid", func(t *testing.T) {
		got := FromEvent(model.Event{Kind: model.EventSettled, Bidder: "dave", Amount: decimal.NewFromInt(7), Paid: false})
		if got.Paid == nil || *got.Paid {
			t.Errorf("Paid = %v, want false", got.Paid)
		}
	})

	t.Run("closed with bidder is unpaid", func(t *testing.T) {
		for _, kind := range []model.EventKind{model.EventClosed, model.EventAborted} {
			got := FromEvent(model.Event{Kind: kind, Bidder: "judy", Amount: decimal.NewFromInt(25)})
			if got.Type != string(kind) {
				t.Errorf("Type = %q, want %q", got.Type, kind)
			}
			if got.Amount == nil || !got.Amount.Decimal().Equal(decimal.NewFromInt(25)) {
				t.Errorf("%s Amount = %v, want 25", kind, got.Amount)
			}
			if got.Paid == nil || *got.Paid {
				t.Errorf("%s Paid = %v, want false", kind, got.Paid)
			}
		}
	})

	t.Run("settled without winner", func(t *testing.T) {
		got := FromEvent(model.Event{Kind: model.EventSettled})
		if got.Amount != nil || got.Paid != nil {
			t.Error("no-bid settlement should not carry amount/paid")
		}
	})
}

func TestBidText_RoundTrip(t *testing.T) {
	outcomes := []model.Outcome{
		model.OutcomeSuccess,
		model.OutcomeInsufficientFunds,
		model.OutcomeAuctionNotFound,
		model.OutcomeAuctionEnded,
		model.OutcomeBidTooLow,
		model.OutcomeBidLimitExceeded,
	}
	for _, o := range outcomes {
		for _, limit := range []int{0, 2, 25} {
			if got := OutcomeFromText(BidText(o, limit)); got != o {
				t.Errorf("OutcomeFromText(BidText(%q, %d)) = %q", o, limit, got)
			}
		}
	}

	if got := BidText(model.OutcomeUnknown, 0); got != BidInvalidRequest {
		t.Errorf("BidText(Unknown) = %q, want %q", got, BidInvalidRequest)
	}
}

func TestBidText_LimitFollowsConfig(t *testing.T) {
	tests := []struct {
		maxBids int
		want    string
	}{
		{0, "Error: You have reached the maximum of 10 bids for this item."},
		{10, "Error: You have reached the maximum of 10 bids for this item."},
		{2, "Error: You have reached the maximum of 2 bids for this item."},
	}

	for _, tt := range tests {
		if got := BidText(model.OutcomeBidLimitExceeded, tt.maxBids); got != tt.want {
			t.Errorf("BidText(BidLimitExceeded, %d) = %q, want %q", tt.maxBids, got, tt.want)
		}
	}

	if got := OutcomeFromText("Error: You have reached the maximum of bids"); got != model.OutcomeUnknown {
		t.Errorf("OutcomeFromText(truncated) = %q, want %q", got, model.OutcomeUnknown)
	}
}
