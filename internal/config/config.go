package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const namespace = "FRIDAY"

// Config is the full process configuration, read from FRIDAY_* environment
// variables. A .env file in the working directory is loaded first when
// present.
type Config struct {
	Port     int    `envconfig:"PORT" default:"4747"`
	DataDir  string `envconfig:"DATA_DIR" default:"./data"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// AdminPasswordHash is a bcrypt hash; when set it takes precedence over
	// the plain AdminPassword.
	AdminPassword     string        `envconfig:"ADMIN_PASSWORD" default:"tgif"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"168h"`

	CronJobsPath  string        `envconfig:"CRON_JOBS_PATH"`
	UsageLogDir   string        `envconfig:"USAGE_LOG_DIR"`
	UsageCacheTTL time.Duration `envconfig:"USAGE_CACHE_TTL" default:"5m"`
	AgentsFile    string        `envconfig:"AGENTS_FILE"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	// Missing .env is fine; only real vars are required.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(namespace, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
