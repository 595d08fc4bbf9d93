package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AuthMode selects the verifier strategy at startup: "live" or "demo".
	// Demo mode accepts only the exact DemoToken and yields a read-only
	// identity; it is never entered implicitly.
	AuthMode      string        `env:"AUTH_MODE,      default=live"`
	DemoToken     string        `env:"DEMO_TOKEN"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=120h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=manvaasam"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Production reports whether the service runs with production hardening
// (secure cookies, JSON logs).
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.AuthMode == "live" && cfg.SessionSecret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required in live auth mode")
	}
	if cfg.AuthMode == "demo" && cfg.DemoToken == "" {
		return nil, fmt.Errorf("config: DEMO_TOKEN is required in demo auth mode")
	}
	return &cfg, nil
}
