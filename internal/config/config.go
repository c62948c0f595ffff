package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Pricing  PricingConfig
	Cart     CartConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string `env:"PORT" envDefault:"8080"`
	Host            string `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"15"`
	WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
}

type AuthConfig struct {
	// Valid API keys for the mutating cart/checkout endpoints
	APIKeys []string `env:"API_KEYS" envDefault:"apitest"`
}

// PricingConfig carries the receipt arithmetic constants. Tax applies after
// discount; loyalty points are awarded per whole LoyaltyStep of the final total.
type PricingConfig struct {
	TaxRate       float64 `env:"TAX_RATE" envDefault:"0.05"`
	LoyaltyStep   float64 `env:"LOYALTY_STEP" envDefault:"100"`
	PointsPerStep int     `env:"LOYALTY_POINTS_PER_STEP" envDefault:"10"`
}

type CartConfig struct {
	// Carts idle longer than IdleTTL are cancelled so their reserved stock
	// returns to the catalog.
	IdleTTL      time.Duration `env:"CART_IDLE_TTL" envDefault:"30m"`
	ReapInterval time.Duration `env:"CART_REAP_INTERVAL" envDefault:"5m"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	if c.Pricing.TaxRate < 0 {
		return fmt.Errorf("TAX_RATE must not be negative")
	}

	if c.Pricing.LoyaltyStep <= 0 {
		return fmt.Errorf("LOYALTY_STEP must be positive")
	}

	if c.Cart.IdleTTL <= 0 || c.Cart.ReapInterval <= 0 {
		return fmt.Errorf("cart TTL and reap interval must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}
