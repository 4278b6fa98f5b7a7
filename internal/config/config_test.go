package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad(t *testing.T) {
	yaml := `
server:
  listen_addr: ":9000"
  static_file: web/index.html
auction:
  tick_interval: 250ms
  starting_balance: "500.50"
journal:
  driver: bolt
  bolt_path: /var/lib/auctiond/journal.db
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("Server.ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":9000")
	}
	if cfg.Server.StaticFile != "web/index.html" {
		t.Errorf("Server.StaticFile = %q, want %q", cfg.Server.StaticFile, "web/index.html")
	}
	if cfg.Auction.TickInterval != 250*time.Millisecond {
		t.Errorf("Auction.TickInterval = %v, want %v", cfg.Auction.TickInterval, 250*time.Millisecond)
	}
	if cfg.Journal.Driver != JournalBolt {
		t.Errorf("Journal.Driver = %q, want %q", cfg.Journal.Driver, JournalBolt)
	}

	balance, err := cfg.StartingBalance()
	if err != nil {
		t.Fatalf("StartingBalance: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("500.50")) {
		t.Errorf("StartingBalance = %s, want 500.50", balance)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")
	t.Setenv("TEST_REDIS_ADDR", "redis:6379")

	yaml := `
notify:
  redis:
    enabled: true
    addr: ${TEST_REDIS_ADDR}
journal:
  driver: postgres
  postgres:
    host: localhost
    name: auctions
    user: auctiond
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Journal.Postgres.Password != "secret123" {
		t.Errorf("Journal.Postgres.Password = %q, want %q", cfg.Journal.Postgres.Password, "secret123")
	}
	if cfg.Notify.Redis.Addr != "redis:6379" {
		t.Errorf("Notify.Redis.Addr = %q, want %q", cfg.Notify.Redis.Addr, "redis:6379")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "server: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "log:\n  level: debug\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("Server.ListenAddr = %q, want default %q", cfg.Server.ListenAddr, DefaultListenAddr)
	}
	if cfg.Auction.TickInterval != DefaultTickInterval {
		t.Errorf("Auction.TickInterval = %v, want default %v", cfg.Auction.TickInterval, DefaultTickInterval)
	}
	if cfg.Auction.StartingBalance != DefaultStartingBalance {
		t.Errorf("Auction.StartingBalance = %q, want default %q", cfg.Auction.StartingBalance, DefaultStartingBalance)
	}
	if cfg.Auction.MaxBidsPerBidder != DefaultMaxBidsPerBidder {
		t.Errorf("Auction.MaxBidsPerBidder = %d, want default %d", cfg.Auction.MaxBidsPerBidder, DefaultMaxBidsPerBidder)
	}
	if cfg.Journal.Driver != JournalNone {
		t.Errorf("Journal.Driver = %q, want default %q", cfg.Journal.Driver, JournalNone)
	}
	if cfg.Journal.Postgres.Port != DefaultDBPort {
		t.Errorf("Journal.Postgres.Port = %d, want default %d", cfg.Journal.Postgres.Port, DefaultDBPort)
	}
	if cfg.Notify.Redis.Channel != DefaultRedisChannel {
		t.Errorf("Notify.Redis.Channel = %q, want default %q", cfg.Notify.Redis.Channel, DefaultRedisChannel)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	// Explicit values survive.
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Log: LogConfig{Level: tt.level}}
			got, err := cfg.LogLevel()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LogLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("LogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	validPG := DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 10, MinConns: 2}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad starting balance",
			mutate:  func(c *Config) { c.Auction.StartingBalance = "lots" },
			wantErr: "auction.starting_balance: ",
		},
		{
			name:    "negative starting balance",
			mutate:  func(c *Config) { c.Auction.StartingBalance = "-1" },
			wantErr: "auction.starting_balance must not be negative, got -1",
		},
		{
			name:    "zero bid limit",
			mutate:  func(c *Config) { c.Auction.MaxBidsPerBidder = -1 },
			wantErr: "auction.max_bids_per_bidder must be >= 1",
		},
		{
			name:    "redis without addr",
			mutate:  func(c *Config) { c.Notify.Redis.Enabled = true },
			wantErr: "notify.redis.addr is required when redis is enabled",
		},
		{
			name:    "unknown journal driver",
			mutate:  func(c *Config) { c.Journal.Driver = "sqlite" },
			wantErr: `journal.driver must be one of none, postgres, bolt; got "sqlite"`,
		},
		{
			name: "missing postgres host",
			mutate: func(c *Config) {
				c.Journal.Driver = JournalPostgres
			},
			wantErr: "journal.postgres.host is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Journal.Driver = JournalPostgres
				c.Journal.Postgres = validPG
				c.Journal.Postgres.MaxConns = 5
				c.Journal.Postgres.MinConns = 10
			},
			wantErr: "journal.postgres.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name: "valid postgres",
			mutate: func(c *Config) {
				c.Journal.Driver = JournalPostgres
				c.Journal.Postgres = validPG
			},
			wantErr: "",
		},
		{
			name:    "bad batch size",
			mutate:  func(c *Config) { c.Journal.BatchSize = -5 },
			wantErr: "journal.batch_size must be >= 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if !strings.HasPrefix(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadAndValidate_ExampleConfig(t *testing.T) {
	t.Setenv("AUCTIOND_DB_PASSWORD", "secret")

	cfg, err := LoadAndValidate(filepath.Join("..", "..", "configs", "auctiond.yaml"))
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}

	if cfg.Journal.Driver != JournalBolt {
		t.Errorf("Journal.Driver = %q, want %q", cfg.Journal.Driver, JournalBolt)
	}
	if cfg.Journal.Postgres.Password != "secret" {
		t.Errorf("Journal.Postgres.Password = %q, want %q", cfg.Journal.Postgres.Password, "secret")
	}
	if cfg.Auction.MaxBidsPerBidder != 10 {
		t.Errorf("Auction.MaxBidsPerBidder = %d, want %d", cfg.Auction.MaxBidsPerBidder, 10)
	}
}
