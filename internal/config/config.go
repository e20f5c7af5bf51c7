package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Admin    AdminConfig
	Pricing  PricingConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	QuoteRateLimit  int64         `env:"QUOTE_RATE_LIMIT" envDefault:"120"`
	QuoteRateWindow time.Duration `env:"QUOTE_RATE_WINDOW" envDefault:"1m"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST,required"`
	Port            int           `env:"DB_PORT,required"`
	User            string        `env:"DB_USER,required"`
	Password        string        `env:"DB_PASSWORD,required"`
	Name            string        `env:"DB_NAME,required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,required"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"24h"`
}

// CatalogConfig points at the platform catalog service that owns product
// configuration (real-world print-area dimensions). Optional: without a
// base URL the service prices with whatever dimensions the design carries.
type CatalogConfig struct {
	BaseURL string `env:"CATALOG_BASE_URL"`
	APIKey  string `env:"CATALOG_API_KEY"`
}

// AdminConfig drives the Telegram back-office notifications. Optional: an
// empty token disables them.
type AdminConfig struct {
	TelegramToken string  `env:"TELEGRAM_TOKEN"`
	ChannelID     int64   `env:"ADMIN_CHANNEL_ID"`
	IDs           []int64 `env:"ADMIN_IDS" envSeparator:","`
}

// PricingConfig selects the price table. TablePath is a JSON file loaded
// and validated at startup; empty means the built-in defaults.
type PricingConfig struct {
	TablePath string `env:"PRICING_TABLE_PATH"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Admin.TelegramToken != "" && cfg.Admin.ChannelID == 0 && len(cfg.Admin.IDs) == 0 {
		return nil, fmt.Errorf("telegram token set but no admin channel or admin IDs configured")
	}

	return &cfg, nil
}
