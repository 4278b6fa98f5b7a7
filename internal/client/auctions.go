package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/wire"
)

// ActiveAuctions lists auctions still accepting bids.
func (c *Client) ActiveAuctions(ctx context.Context) ([]wire.Auction, error) {
	var out []wire.Auction
	if err := c.get(ctx, "/api/auctions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllAuctions lists every auction, ended ones included.
func (c *Client) AllAuctions(ctx context.Context) ([]wire.Auction, error) {
	var out []wire.Auction
	if err := c.get(ctx, "/api/admin/auctions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BidderStatus returns the wallet of the named participant, creating the
// participant on the server if needed.
func (c *Client) BidderStatus(ctx context.Context, name string) (wire.BidderStatus, error) {
	var out wire.BidderStatus
	err := c.get(ctx, "/api/user-status", url.Values{"bidderName": {name}}, &out)
	return out, err
}

// WonItems lists the items the named participant has won.
func (c *Client) WonItems(ctx context.Context, name string) ([]wire.WonItem, error) {
	var out []wire.WonItem
	if err := c.get(ctx, "/api/my-wins", url.Values{"bidderName": {name}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAuction starts a new auction and returns its ID.
func (c *Client) CreateAuction(ctx context.Context, itemName string, durationSeconds int, startPrice decimal.Decimal) (int, error) {
	body, err := jsonBody(wire.CreateAuctionRequest{
		ItemName:        itemName,
		DurationSeconds: durationSeconds,
		StartPrice:      wire.Money(startPrice),
	})
	if err != nil {
		return 0, err
	}

	resp, err := c.post(ctx, "/api/admin/auctions", body)
	if err != nil {
		return 0, err
	}

	var out wire.CreateAuctionResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return 0, fmt.Errorf("unmarshal response: %w", err)
	}
	return out.ID, nil
}

// StopAuction asks the server to end an auction early.
func (c *Client) StopAuction(ctx context.Context, id int) error {
	_, err := c.post(ctx, "/api/admin/auctions/"+strconv.Itoa(id)+"/stop", nil)
	return err
}

// BidResult is the server's answer to a bid.
type BidResult struct {
	Outcome model.Outcome
	Message string // plain-text response, e.g. "Error: Auction has ended."
}

// PlaceBid submits a bid. A rejected bid is not an error: the outcome
// names the rule that rejected it.
func (c *Client) PlaceBid(ctx context.Context, auctionID int, bidder string, amount decimal.Decimal) (BidResult, error) {
	form := url.Values{
		"auctionId":  {strconv.Itoa(auctionID)},
		"bidderName": {bidder},
		"bidAmount":  {amount.String()},
	}

	resp, err := c.post(ctx, "/api/bid", formBody(form))
	if err != nil {
		return BidResult{Outcome: model.OutcomeUnknown}, err
	}

	res := BidResult{Outcome: wire.OutcomeFromText(string(resp)), Message: string(resp)}
	if res.Outcome == model.OutcomeUnknown {
		return res, fmt.Errorf("unrecognized bid response %q", res.Message)
	}
	return res, nil
}
