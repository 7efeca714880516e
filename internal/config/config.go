package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Tenant API
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	Tenant         string `mapstructure:"TENANT"` // "public" omits the X-Tenant header
	HTTPTimeoutSec int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// App
	Env string `mapstructure:"APP_ENV"` // development | production

	// Listados
	PageSize int `mapstructure:"PAGE_SIZE"` // dropdown population cap

	// Poller de ventas
	PollIntervalSec int `mapstructure:"POLL_INTERVAL_SECONDS"`
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("TENANT", "public")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("PAGE_SIZE", 100)
	viper.SetDefault("POLL_INTERVAL_SECONDS", 10)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
