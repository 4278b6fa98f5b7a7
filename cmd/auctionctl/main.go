// Command auctionctl drives an auctiond server from the terminal: it
// replaces the desktop admin panel and doubles as a scripted bidder.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/auctionhouse/internal/client"
	"github.com/rickgao/auctionhouse/internal/version"
)

const usage = `usage: auctionctl [-server URL] [-timeout D] <command> [flags]

commands:
  list      list active auctions (-all for every auction)
  create    start an auction (-item, -duration, -price)
  stop      end an auction early (-id)
  bid       place a bid (-id, -bidder, -amount)
  status    show a bidder's wallet (-bidder)
  wins      show a bidder's won items (-bidder)
  watch     stream notifications until interrupted (-verbose)
  version   print the build version
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "auctionctl:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("auctionctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	server := fs.String("server", envOr("AUCTIOND_URL", "http://localhost:8081"), "auctiond base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request timeout")
	debug := fs.Bool("debug", false, "log client retries to stderr")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	c := client.NewClient(*server,
		client.WithLogger(logger),
		client.WithTimeout(*timeout),
		client.WithRetries(2, 250*time.Millisecond),
	)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		return cmdList(ctx, c, rest, stdout, stderr)
	case "create":
		return cmdCreate(ctx, c, rest, stdout, stderr)
	case "stop":
		return cmdStop(ctx, c, rest, stdout, stderr)
	case "bid":
		return cmdBid(ctx, c, rest, stdout, stderr)
	case "status":
		return cmdStatus(ctx, c, rest, stdout, stderr)
	case "wins":
		return cmdWins(ctx, c, rest, stdout, stderr)
	case "watch":
		return cmdWatch(ctx, c, rest, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
