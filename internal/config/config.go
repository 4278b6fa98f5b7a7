package config

import "time"

// Config is the root configuration for an auctiond instance.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auction AuctionConfig `yaml:"auction"`
	Notify  NotifyConfig  `yaml:"notify"`
	Journal JournalConfig `yaml:"journal"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	StaticFile      string        `yaml:"static_file"` // Bidder page served at "/"; optional
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"` // CORS and /ws origins
}

// AuctionConfig holds auction engine settings.
type AuctionConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval"`    // Wall time per countdown second
	StartingBalance  string        `yaml:"starting_balance"` // Decimal string, e.g. "10000.00"
	MaxBidsPerBidder int           `yaml:"max_bids_per_bidder"`
}

// NotifyConfig holds notification broker settings.
type NotifyConfig struct {
	BufferSize int         `yaml:"buffer_size"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig enables republishing notifications to a Redis channel.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

// JournalConfig holds audit journal settings.
type JournalConfig struct {
	Driver        string        `yaml:"driver"` // none, postgres or bolt
	BoltPath      string        `yaml:"bolt_path"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	Postgres      DBConfig      `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Journal drivers.
const (
	JournalNone     = "none"
	JournalPostgres = "postgres"
	JournalBolt     = "bolt"
)
