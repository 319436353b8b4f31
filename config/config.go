package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Booking  BookingConfig  `yaml:"booking"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
// Driver is either "sqlite" or "postgres"; the default is an in-memory
// SQLite database so all marketplace state is discarded on process exit.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// BookingConfig holds the tunables of the booking engine.
type BookingConfig struct {
	// RequestExpiryHours is how long a booking stays valid for pickup
	// after creation. The expiry is stored on the booking; nothing in
	// the engine evaluates it against the clock.
	RequestExpiryHours int `yaml:"request_expiry_hours"`
	// AlmostFullRatio is the capacity utilisation at which a truck is
	// reported as "Almost Full" instead of "Partial".
	AlmostFullRatio float64 `yaml:"almost_full_ratio"`
}

// SeedConfig controls loading of the demo fixture data.
type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration usable without a config file.
func Default() *Config {
	var cfg Config
	cfg.Seed.Enabled = true
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		if cfg.Database.Driver == "sqlite" {
			cfg.Database.DSN = "file::memory:?cache=shared"
		} else {
			logrus.Warn("database.dsn is not set for the postgres driver")
		}
	}

	if cfg.Booking.RequestExpiryHours <= 0 {
		cfg.Booking.RequestExpiryHours = 12
	}
	if cfg.Booking.AlmostFullRatio <= 0 || cfg.Booking.AlmostFullRatio >= 1 {
		cfg.Booking.AlmostFullRatio = 0.9
	}
}
