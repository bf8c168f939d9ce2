package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"data/eventpulse.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	HTTPAddr     string `env:"HTTP_ADDR" envDefault:":8080"`
	CleanupToken string `env:"CLEANUP_TOKEN"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty     bool   `env:"LOG_PRETTY" envDefault:"false"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"pt-BR"`

	// RabbitMQURL empty means ledger entries are written inline.
	RabbitMQURL         string `env:"RABBITMQ_URL"`
	RabbitMQLedgerQueue string `env:"RABBITMQ_LEDGER_QUEUE" envDefault:"points-ledger"`

	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads .env (if any) and the environment, then validates the result.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, cron).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UsesBroker reports whether ledger entries go through RabbitMQ.
func (c *Config) UsesBroker() bool {
	return strings.TrimSpace(c.RabbitMQURL) != ""
}

// RequireDiscord checks the settings only the Discord bot needs.
func (c *Config) RequireDiscord() error {
	if strings.TrimSpace(c.DiscordToken) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN is required and cannot be empty")
	}
	for _, r := range c.DiscordGuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_GUILD_ID must be a Discord guild ID (digits only)")
		}
	}
	return nil
}

// RequireBroker checks the settings only the ledger worker needs.
func (c *Config) RequireBroker() error {
	if !c.UsesBroker() {
		return fmt.Errorf("config: RABBITMQ_URL is required for the ledger worker")
	}
	return nil
}

// validate applies the rules shared by every binary.
func (c *Config) validate() error {
	c.DatabaseDriver = strings.ToLower(strings.TrimSpace(c.DatabaseDriver))
	switch c.DatabaseDriver {
	case DriverPostgres:
		if err := c.validatePostgres(); err != nil {
			return err
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("config: SQLITE_PATH is required when DATABASE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("config: DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}

	if c.UsesBroker() {
		parsed, err := url.Parse(c.RabbitMQURL)
		if err != nil || (parsed.Scheme != "amqp" && parsed.Scheme != "amqps") {
			return fmt.Errorf("config: RABBITMQ_URL invalid (%q): scheme must be amqp or amqps", c.RabbitMQURL)
		}
		if strings.TrimSpace(c.RabbitMQLedgerQueue) == "" {
			return fmt.Errorf("config: RABBITMQ_LEDGER_QUEUE cannot be empty")
		}
	}

	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("config: HTTP_ADDR cannot be empty")
	}
	return nil
}

func (c *Config) validatePostgres() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/eventpulse?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}
