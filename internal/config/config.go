package config

import (
	"fmt"

	pkgconfig "github.com/Moazzam-Sonu/premier-whishList/pkg/config"
)

// Guest store backends.
const (
	GuestStoreFile  = "file"
	GuestStoreRedis = "redis"
)

// Config holds all configuration for the widget daemon.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Diagnostics HTTP server
	HTTPPort int `env:"WIDGET_HTTP_PORT" envDefault:"8090"`

	// Remote wishlist service
	APIBaseURL string `env:"WISHLIST_API_BASE_URL" envDefault:"https://premier-whishlist.fly.dev"`
	ShopDomain string `env:"SHOP_DOMAIN"`

	// Widget marker directory watched for *.json files
	MarkerDir string `env:"MARKER_DIR" envDefault:"./markers"`

	// Guest store
	GuestStoreBackend string `env:"GUEST_STORE_BACKEND" envDefault:"file"`
	GuestStorePath    string `env:"GUEST_STORE_PATH" envDefault:"./data/guest-wishlist.json"`
	GuestStoreKey     string `env:"GUEST_STORE_KEY" envDefault:"guestWishlist"`

	// Redis (used when GUEST_STORE_BACKEND=redis)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load widget config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("WISHLIST_API_BASE_URL must not be empty")
	}
	switch cfg.GuestStoreBackend {
	case GuestStoreFile, GuestStoreRedis:
	default:
		return nil, fmt.Errorf("invalid guest store backend: %q", cfg.GuestStoreBackend)
	}
	return cfg, nil
}
