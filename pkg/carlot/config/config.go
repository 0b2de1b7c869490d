// Package config loads carlot settings from flags, environment and an
// optional config file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/logger"
)

// EnvPrefix prefixes every environment override, e.g. CARLOT_LOG_LEVEL.
const EnvPrefix = "CARLOT"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Search  SearchConfig  `mapstructure:"search"`
	Log     logger.Config `mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// CatalogConfig configures the simulated data source.
type CatalogConfig struct {
	Latency time.Duration `mapstructure:"latency"`
	Fail    bool          `mapstructure:"fail"`
}

// SearchConfig configures result paging.
type SearchConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("catalog.latency", 300*time.Millisecond)
	v.SetDefault("catalog.fail", false)
	v.SetDefault("search.page_size", 9)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logger.FormatConsole))
	v.SetDefault("log.output", "stdout")
}

// Load reads file (when not empty), environment overrides and defaults into
// a Config.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// SERVER_ADDRESS predates the prefixed variables.
	if err := v.BindEnv("server.address", EnvPrefix+"_SERVER_ADDRESS", "SERVER_ADDRESS"); err != nil {
		return nil, fmt.Errorf("bind server address env: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %q: %w", file, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address must not be empty")
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive, got %d", c.Search.PageSize)
	}
	if c.Catalog.Latency < 0 {
		return fmt.Errorf("catalog.latency must not be negative, got %s", c.Catalog.Latency)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return errors.New("server.rate_limit and server.rate_burst must not be negative")
	}
	return nil
}
