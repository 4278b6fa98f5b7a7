package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/client"
	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/wire"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func cmdList(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("list", stderr)
	all := fs.Bool("all", false, "include ended auctions")
	if err := parse(fs, args); err != nil {
		return err
	}

	var (
		auctions []wire.Auction
		err      error
	)
	if *all {
		auctions, err = c.AllAuctions(ctx)
	} else {
		auctions, err = c.ActiveAuctions(ctx)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tSTART\tHIGHEST\tBIDDER\tREMAINING\tSTATUS")
	for _, a := range auctions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%ds\t%s\n",
			a.ID, a.ItemName,
			a.StartPrice.Decimal().StringFixed(2),
			a.HighestBid.Decimal().StringFixed(2),
			a.HighestBidder, a.RemainingTime, a.Status)
	}
	return tw.Flush()
}

func cmdCreate(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("create", stderr)
	item := fs.String("item", "", "item name")
	duration := fs.Int("duration", 60, "duration in seconds")
	price := fs.String("price", "", "starting price")
	if err := parse(fs, args); err != nil {
		return err
	}

	startPrice, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("-price: %w", err)
	}

	id, err := c.CreateAuction(ctx, strings.TrimSpace(*item), *duration, startPrice)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "created auction %d\n", id)
	return nil
}

func cmdStop(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stop", stderr)
	id := fs.Int("id", 0, "auction ID")
	if err := parse(fs, args); err != nil {
		return err
	}

	if err := c.StopAuction(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "auction %d stopping\n", *id)
	return nil
}

func cmdBid(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("bid", stderr)
	id := fs.Int("id", 0, "auction ID")
	bidder := fs.String("bidder", "", "bidder name")
	amount := fs.String("amount", "", "bid amount")
	if err := parse(fs, args); err != nil {
		return err
	}

	value, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("-amount: %w", err)
	}

	res, err := c.PlaceBid(ctx, *id, *bidder, value)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 400 {
			fmt.Fprintln(stdout, apiErr.Message)
			return nil
		}
		return err
	}
	fmt.Fprintln(stdout, res.Message)
	return nil
}

func cmdStatus(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("status", stderr)
	bidder := fs.String("bidder", "", "bidder name")
	if err := parse(fs, args); err != nil {
		return err
	}

	status, err := c.BidderStatus(ctx, *bidder)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %s\n", status.Name, status.Wallet.Decimal().StringFixed(2))
	return nil
}

func cmdWins(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("wins", stderr)
	bidder := fs.String("bidder", "", "bidder name")
	if err := parse(fs, args); err != nil {
		return err
	}

	items, err := c.WonItems(ctx, *bidder)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tCOST")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\n", it.ItemName, it.Cost.Decimal().StringFixed(2))
	}
	return tw.Flush()
}

func cmdWatch(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("watch", stderr)
	verbose := fs.Bool("verbose", false, "print full event JSON")
	if err := parse(fs, args); err != nil {
		return err
	}

	err := c.Watch(ctx, func(ev wire.Event) error {
		if *verbose {
			data, _ := json.MarshalIndent(ev, "", "  ")
			fmt.Fprintf(stdout, "[%s] %s\n", strings.ToUpper(ev.Type), data)
			return nil
		}
		fmt.Fprintln(stdout, formatEvent(ev))
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func formatEvent(ev wire.Event) string {
	a := ev.Auction
	switch model.EventKind(ev.Type) {
	case model.EventBid:
		return fmt.Sprintf("[BID] auction=%d item=%s bidder=%s amount=%s remaining=%ds",
			ev.AuctionID, a.ItemName, ev.Bidder, money(ev.Amount), a.RemainingTime)
	case model.EventSettled:
		if ev.Bidder == "" {
			return fmt.Sprintf("[SETTLED] auction=%d item=%s no bids", ev.AuctionID, a.ItemName)
		}
		paid := ev.Paid != nil && *ev.Paid
		return fmt.Sprintf("[SETTLED] auction=%d item=%s winner=%s amount=%s paid=%t",
			ev.AuctionID, a.ItemName, ev.Bidder, money(ev.Amount), paid)
	case model.EventClosed, model.EventAborted:
		bidder := ev.Bidder
		if bidder == "" {
			bidder = model.NoBidder
		}
		return fmt.Sprintf("[%s] auction=%d item=%s high_bidder=%s amount=%s not sold",
			strings.ToUpper(ev.Type), ev.AuctionID, a.ItemName, bidder, money(ev.Amount))
	default:
		return fmt.Sprintf("[%s] auction=%d item=%s highest=%s remaining=%ds status=%q",
			strings.ToUpper(ev.Type), ev.AuctionID, a.ItemName,
			a.HighestBid.Decimal().StringFixed(2), a.RemainingTime, a.Status)
	}
}

func money(m *wire.Money) string {
	if m == nil {
		return "-"
	}
	return m.Decimal().StringFixed(2)
}
