package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultListenAddr       = ":8081"
	DefaultReadTimeout      = 15 * time.Second
	DefaultWriteTimeout     = 15 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultTickInterval     = 1 * time.Second
	DefaultStartingBalance  = "10000.00"
	DefaultMaxBidsPerBidder = 10
	DefaultNotifyBuffer     = 256
	DefaultRedisChannel     = "auctions"
	DefaultJournalDriver    = JournalNone
	DefaultBoltPath         = "auctiond.journal.db"
	DefaultBatchSize        = 100
	DefaultFlushInterval    = 1 * time.Second
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultLogLevel         = "info"
)

func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	// Auction defaults
	if c.Auction.TickInterval == 0 {
		c.Auction.TickInterval = DefaultTickInterval
	}
	if c.Auction.StartingBalance == "" {
		c.Auction.StartingBalance = DefaultStartingBalance
	}
	if c.Auction.MaxBidsPerBidder == 0 {
		c.Auction.MaxBidsPerBidder = DefaultMaxBidsPerBidder
	}

	// Notify defaults
	if c.Notify.BufferSize == 0 {
		c.Notify.BufferSize = DefaultNotifyBuffer
	}
	if c.Notify.Redis.Channel == "" {
		c.Notify.Redis.Channel = DefaultRedisChannel
	}

	// Journal defaults
	if c.Journal.Driver == "" {
		c.Journal.Driver = DefaultJournalDriver
	}
	if c.Journal.BoltPath == "" {
		c.Journal.BoltPath = DefaultBoltPath
	}
	if c.Journal.BatchSize == 0 {
		c.Journal.BatchSize = DefaultBatchSize
	}
	if c.Journal.FlushInterval == 0 {
		c.Journal.FlushInterval = DefaultFlushInterval
	}
	applyDBDefaults(&c.Journal.Postgres)

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
