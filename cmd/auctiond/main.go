package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/auctionhouse/internal/auction"
	"github.com/rickgao/auctionhouse/internal/config"
	"github.com/rickgao/auctionhouse/internal/httpapi"
	"github.com/rickgao/auctionhouse/internal/journal"
	"github.com/rickgao/auctionhouse/internal/ledger"
	"github.com/rickgao/auctionhouse/internal/notify"
	"github.com/rickgao/auctionhouse/internal/registry"
	"github.com/rickgao/auctionhouse/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("auctiond failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting auctiond",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
	)

	balance, err := cfg.StartingBalance()
	if err != nil {
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	broker := notify.NewBroker(notify.Config{
		BufferSize:  cfg.Notify.BufferSize,
		MaxBuffered: notify.DefaultConfig().MaxBuffered,
	}, logger)

	reg := registry.NewRegistry(registry.Config{
		Auction: auction.Config{
			TickInterval:     cfg.Auction.TickInterval,
			MaxBidsPerBidder: cfg.Auction.MaxBidsPerBidder,
		},
		StartingBalance: balance,
	}, ledger.New(balance), broker, logger)

	store, err := openJournal(ctx, cfg.Journal, logger)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	// Subscriptions are taken before the registry starts so no event is missed.
	writer := journal.NewWriter(journal.WriterConfig{
		BatchSize:     cfg.Journal.BatchSize,
		FlushInterval: cfg.Journal.FlushInterval,
		FlushTimeout:  journal.DefaultWriterConfig().FlushTimeout,
	}, reg.Subscribe(), store, logger)

	var forwarder *notify.RedisForwarder
	if cfg.Notify.Redis.Enabled {
		forwarder, err = notify.NewRedisForwarder(ctx, notify.RedisConfig{
			Addr:    cfg.Notify.Redis.Addr,
			Channel: cfg.Notify.Redis.Channel,
		}, reg.Subscribe(), logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}

	if err := writer.Start(ctx); err != nil {
		return fmt.Errorf("start journal writer: %w", err)
	}
	if forwarder != nil {
		if err := forwarder.Start(ctx); err != nil {
			return fmt.Errorf("start redis forwarder: %w", err)
		}
	}
	if err := reg.Start(ctx); err != nil {
		return fmt.Errorf("start registry: %w", err)
	}

	opts := []httpapi.Option{
		httpapi.WithLogger(logger),
		httpapi.WithHealthCheck("journal", store.Health),
		httpapi.WithHealthCheck("journal_writer", func(context.Context) (any, error) {
			return writer.Stats(), nil
		}),
	}
	if forwarder != nil {
		opts = append(opts, httpapi.WithHealthCheck("redis", func(context.Context) (any, error) {
			return forwarder.Stats(), nil
		}))
	}

	server := httpapi.New(httpapi.Config{
		ListenAddr:      cfg.Server.ListenAddr,
		StaticFile:      cfg.Server.StaticFile,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	}, reg, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx)
	})

	logger.Info("auctiond running",
		"listen_addr", cfg.Server.ListenAddr,
		"journal", cfg.Journal.Driver,
		"redis", cfg.Notify.Redis.Enabled,
	)

	serveErr := g.Wait()

	logger.Info("shutting down...")

	// Registry first: running auctions close and their events reach the
	// journal and Redis before those subscriptions close.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout+5*time.Second)
	defer shutdownCancel()

	if err := reg.Stop(shutdownCtx); err != nil {
		logger.Warn("registry stop", "error", err)
	}
	writer.Stop(shutdownCtx)
	if forwarder != nil {
		if err := forwarder.Stop(shutdownCtx); err != nil {
			logger.Warn("redis forwarder stop", "error", err)
		}
	}

	stats := writer.Stats()
	logger.Info("auctiond stopped",
		"journal_inserts", stats.Inserts,
		"journal_errors", stats.Errors,
	)
	return serveErr
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.LoadAndValidate(path)
}
