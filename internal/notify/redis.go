package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/wire"
)

// RedisConfig holds settings for the Redis forwarder.
type RedisConfig struct {
	Addr    string
	Channel string
}

// Publisher is the subset of a Redis client the forwarder needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

// RedisForwarder republishes every event from a subscription to a Redis
// channel as wire JSON, so other processes can follow the auction house.
type RedisForwarder struct {
	pub     Publisher
	closer  func() error
	channel string
	sub     *Subscription
	logger  *slog.Logger

	wg sync.WaitGroup

	mu        sync.Mutex
	forwarded int64
	failures  int64
}

// ForwarderStats contains runtime statistics.
type ForwarderStats struct {
	Forwarded int64
	Failures  int64
}

// NewRedisForwarder connects to Redis and verifies the connection.
func NewRedisForwarder(ctx context.Context, cfg RedisConfig, sub *Subscription, logger *slog.Logger) (*RedisForwarder, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	f := newRedisForwarder(rdb, cfg.Channel, sub, logger)
	f.closer = rdb.Close
	return f, nil
}

func newRedisForwarder(pub Publisher, channel string, sub *Subscription, logger *slog.Logger) *RedisForwarder {
	if logger == nil {
		logger = slog.Default()
	}
	if channel == "" {
		channel = "auctions"
	}
	return &RedisForwarder{
		pub:     pub,
		channel: channel,
		sub:     sub,
		logger:  logger,
	}
}

// Start begins forwarding in the background.
func (f *RedisForwarder) Start(ctx context.Context) error {
	f.wg.Add(1)
	go f.forwardLoop(ctx)

	f.logger.Info("redis forwarder started", "channel", f.channel)
	return nil
}

// Stop closes the subscription, waits for the loop and closes the client.
func (f *RedisForwarder) Stop(ctx context.Context) error {
	f.sub.Close()

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("redis forwarder stopped")
	case <-ctx.Done():
		f.logger.Warn("redis forwarder stop timed out")
	}

	if f.closer != nil {
		return f.closer()
	}
	return nil
}

// Stats returns current statistics.
func (f *RedisForwarder) Stats() ForwarderStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ForwarderStats{Forwarded: f.forwarded, Failures: f.failures}
}

func (f *RedisForwarder) forwardLoop(ctx context.Context) {
	defer f.wg.Done()

	for {
		ev, ok := f.sub.Receive()
		if !ok {
			return
		}
		f.forward(ctx, ev)
	}
}

func (f *RedisForwarder) forward(ctx context.Context, ev model.Event) {
	raw, err := json.Marshal(wire.FromEvent(ev))
	if err != nil {
		f.logger.Warn("failed to encode event", "event_id", ev.ID, "error", err)
		f.recordFailure()
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if err := f.pub.Publish(pubCtx, f.channel, raw).Err(); err != nil {
		f.logger.Warn("redis publish failed",
			"event_id", ev.ID,
			"auction_id", ev.AuctionID,
			"error", err,
		)
		f.recordFailure()
		return
	}

	f.mu.Lock()
	f.forwarded++
	f.mu.Unlock()
}

func (f *RedisForwarder) recordFailure() {
	f.mu.Lock()
	f.failures++
	f.mu.Unlock()
}
