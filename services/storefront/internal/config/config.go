package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	MongoURI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase       string        `env:"MONGO_DATABASE" envDefault:"storefront"`
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`

	// Empty RedisURL disables the report cache.
	RedisURL       string        `env:"REDIS_URL"`
	ReportCacheTTL time.Duration `env:"REPORT_CACHE_TTL" envDefault:"60s"`

	// Empty NATSURL disables tracking notifications.
	NATSURL string `env:"NATS_URL"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	HandlerTimeout time.Duration `env:"HANDLER_TIMEOUT" envDefault:"10s"`

	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS" envDefault:"200"`
	RateLimitBurst       int           `env:"RATE_LIMIT_BURST" envDefault:"50"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"300"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	DefaultLookback time.Duration `env:"DEFAULT_LOOKBACK" envDefault:"2160h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimitMaxRequests <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("parse env: rate limit window and max requests must be positive")
	}
	return cfg, nil
}
