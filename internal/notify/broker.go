package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/auctionhouse/internal/model"
)

// Config holds broker configuration.
type Config struct {
	BufferSize  int // Initial per-subscriber buffer capacity
	MaxBuffered int // Pending events per subscriber before dropping oldest (0 = unbounded)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize:  256,
		MaxBuffered: 10000,
	}
}

// Broker publishes events to every live subscription.
type Broker struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	published atomic.Int64
}

// BrokerStats contains runtime statistics.
type BrokerStats struct {
	Published   int64
	Subscribers int
}

// NewBroker creates a new Broker.
func NewBroker(cfg Config, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		cfg:    cfg,
		logger: logger,
		subs:   make(map[uint64]*Subscription),
	}
}

// Publish stamps the event with an ID and time if missing and hands it to
// every subscriber. It never blocks on a slow subscriber.
func (b *Broker) Publish(ev model.Event) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, s := range b.subs {
		s.buf.Send(ev)
	}

	b.published.Add(1)
}

// Subscribe registers a new subscription. After Close it returns a
// subscription that is already closed.
func (b *Broker) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Subscription{
		id:     b.nextID,
		broker: b,
		buf:    NewBuffer[model.Event](b.cfg.BufferSize, b.cfg.MaxBuffered),
	}
	b.nextID++

	if b.closed {
		s.buf.Close()
		return s
	}
	b.subs[s.id] = s

	b.logger.Debug("notification subscriber added", "subscriber_id", s.id, "subscribers", len(b.subs))
	return s
}

// Close closes every subscription. Subscribers drain what is pending and
// then observe the end of the stream.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		s.buf.Close()
		delete(b.subs, id)
	}
	b.logger.Debug("notification broker closed")
}

// Stats returns current statistics.
func (b *Broker) Stats() BrokerStats {
	b.mu.RLock()
	subs := len(b.subs)
	b.mu.RUnlock()

	return BrokerStats{Published: b.published.Load(), Subscribers: subs}
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscription is one subscriber's view of the event stream.
type Subscription struct {
	id     uint64
	broker *Broker
	buf    *Buffer[model.Event]
	once   sync.Once
}

// ID returns the subscription identifier.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Receive blocks for the next event. Returns false once the subscription
// is closed and drained.
func (s *Subscription) Receive() (model.Event, bool) {
	return s.buf.Receive()
}

// TryReceive returns the next event without blocking.
func (s *Subscription) TryReceive() (model.Event, bool) {
	return s.buf.TryReceive()
}

// DrainTo removes up to max pending events (all if max <= 0).
func (s *Subscription) DrainTo(max int) []model.Event {
	return s.buf.DrainTo(max)
}

// Stats returns the subscription's buffer statistics.
func (s *Subscription) Stats() BufferStats {
	return s.buf.Stats()
}

// Close unsubscribes and unblocks any pending Receive. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s.id)
		s.buf.Close()
	})
}
