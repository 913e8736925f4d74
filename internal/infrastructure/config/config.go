package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT, default=8080"`
	Env             string        `env:"ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	ActivityWorkers int           `env:"ACTIVITY_WORKERS, default=4"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	JWTExpiresIn      time.Duration `env:"JWT_EXPIRES_IN, default=6h"`
	BcryptCost        int           `env:"BCRYPT_COST, default=10"`
	PasswordMinLength int           `env:"PASSWORD_MIN_LENGTH, default=8"`
	LoginMaxAttempts  int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow       time.Duration `env:"LOGIN_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=music_playlists"`
}

// RedisConfig is optional; an empty Addr disables the login throttle.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTExpiresIn <= 0 {
		return fmt.Errorf("load config: JWT_EXPIRES_IN must be positive")
	}
	if c.Auth.PasswordMinLength < 1 {
		return fmt.Errorf("load config: PASSWORD_MIN_LENGTH must be at least 1")
	}
	if c.ActivityWorkers < 1 {
		return fmt.Errorf("load config: ACTIVITY_WORKERS must be at least 1")
	}
	return nil
}
