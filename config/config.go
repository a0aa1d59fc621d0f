package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	PricesURL      string
	Precision      int32
	RequestTimeout time.Duration
	Log            LogConfig
}

// LogConfig controls where and how much is logged
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetDefaults registers default values on a viper instance
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prices_url", "https://interview.switcheo.com/prices.json")
	v.SetDefault("precision", 5)
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".token-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	SetDefaults(viper.GetViper())

	// Read from environment variables
	viper.SetEnvPrefix("TOKEN_SWAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional, a broken one is not
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(viper.GetViper())
}

// FromViper builds and validates a Config from an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		PricesURL:      strings.TrimSpace(v.GetString("prices_url")),
		Precision:      v.GetInt32("precision"),
		RequestTimeout: v.GetDuration("request_timeout"),
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log.level")),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.PricesURL, "http://") && !strings.HasPrefix(c.PricesURL, "https://") {
		return fmt.Errorf("prices URL must be http(s): %q", c.PricesURL)
	}
	if c.Precision < 0 || c.Precision > 18 {
		return fmt.Errorf("precision must be between 0 and 18, got %d", c.Precision)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
