package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}

	if c.Auction.TickInterval <= 0 {
		return errors.New("auction.tick_interval must be > 0")
	}
	balance, err := c.StartingBalance()
	if err != nil {
		return err
	}
	if balance.IsNegative() {
		return fmt.Errorf("auction.starting_balance must not be negative, got %s", c.Auction.StartingBalance)
	}
	if c.Auction.MaxBidsPerBidder < 1 {
		return errors.New("auction.max_bids_per_bidder must be >= 1")
	}

	if c.Notify.BufferSize < 1 {
		return errors.New("notify.buffer_size must be >= 1")
	}
	if c.Notify.Redis.Enabled && c.Notify.Redis.Addr == "" {
		return errors.New("notify.redis.addr is required when redis is enabled")
	}

	switch c.Journal.Driver {
	case JournalNone:
	case JournalBolt:
		if c.Journal.BoltPath == "" {
			return errors.New("journal.bolt_path is required")
		}
	case JournalPostgres:
		if err := c.Journal.Postgres.validate("journal.postgres"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("journal.driver must be one of none, postgres, bolt; got %q", c.Journal.Driver)
	}
	if c.Journal.BatchSize < 1 {
		return errors.New("journal.batch_size must be >= 1")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
