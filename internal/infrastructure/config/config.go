package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port      string `env:"PORT,       default=3000" validate:"required"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Directory DirectoryConfig
	Session   SessionConfig
	Profile   ProfileConfig
	Redis     RedisConfig
}

type DirectoryConfig struct {
	URL     string        `env:"DIRECTORY_API_URL, default=http://localhost:8080" validate:"required,url"`
	Timeout time.Duration `env:"DIRECTORY_TIMEOUT, default=0s"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,       default=memory" validate:"oneof=memory redis"`
	IdleTTL      time.Duration `env:"SESSION_IDLE_TTL,      default=12h"`
	SubmitTTL    time.Duration `env:"SESSION_SUBMIT_TTL,    default=30s"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type ProfileConfig struct {
	CanEditCredentials bool `env:"PROFILE_CAN_EDIT_CREDENTIALS, default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves the configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
