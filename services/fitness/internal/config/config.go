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
	Port string `env:"PORT" envDefault:"8081"`

	// DBDriver is "postgres" or "sqlite".
	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"fitness.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("parse env: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}
