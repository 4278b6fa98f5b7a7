package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/auctionhouse/internal/config"
	"github.com/rickgao/auctionhouse/internal/database"
	"github.com/rickgao/auctionhouse/internal/journal"
)

// journalStore is a journal.Store that can report its health.
type journalStore struct {
	journal.Store
	Health func(ctx context.Context) (any, error)
}

func openJournal(ctx context.Context, cfg config.JournalConfig, logger *slog.Logger) (*journalStore, error) {
	switch cfg.Driver {
	case config.JournalPostgres:
		logger.Info("connecting to database",
			"host", cfg.Postgres.Host,
			"port", cfg.Postgres.Port,
			"database", cfg.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store := journal.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("database connected")
		return &journalStore{Store: store, Health: pingPool(pool)}, nil

	case config.JournalBolt:
		store, err := journal.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		logger.Info("journal opened", "driver", cfg.Driver, "path", cfg.BoltPath)
		return &journalStore{Store: store, Health: staticHealth(map[string]string{
			"driver": config.JournalBolt,
			"path":   cfg.BoltPath,
		})}, nil

	default:
		return &journalStore{Store: journal.Discard{}, Health: staticHealth("disabled")}, nil
	}
}

func pingPool(pool *pgxpool.Pool) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		if err := pool.Ping(ctx); err != nil {
			return map[string]string{"status": "disconnected"}, err
		}
		stat := pool.Stat()
		return map[string]any{
			"status":       "connected",
			"total_conns":  stat.TotalConns(),
			"idle_conns":   stat.IdleConns(),
			"acquire_wait": stat.EmptyAcquireCount(),
		}, nil
	}
}

func staticHealth(v any) func(ctx context.Context) (any, error) {
	return func(context.Context) (any, error) {
		return v, nil
	}
}
