// config.go - daemon configuration, loaded with viper from built-in
// defaults, a config file, and environment variables (SHIELDEDTX_-prefixed),
// in that order of increasing priority.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the txd daemon's runtime configuration.
type Config struct {
	NIn  int `mapstructure:"n_in"`
	NOut int `mapstructure:"n_out"`

	LedgerPath string `mapstructure:"ledger_path"`
	KeyDir     string `mapstructure:"key_dir"`

	ListenAddr  string `mapstructure:"listen_addr"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

// DefaultConfig returns the configuration used when no file, env var, or
// flag overrides a setting.
func DefaultConfig() *Config {
	return &Config{
		NIn:                2,
		NOut:                2,
		LedgerPath:         "ledger.json",
		KeyDir:             "keys",
		ListenAddr:         ":8555",
		MetricsAddr:        ":9555",
		LogLevel:           "info",
		LogFile:            "",
		RateLimitPerMinute: 120,
	}
}

// LoadConfig reads configuration from configPath (if non-empty), overlays
// SHIELDEDTX_-prefixed environment variables, and falls back to
// DefaultConfig's values for anything unset.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("n_in", def.NIn)
	v.SetDefault("n_out", def.NOut)
	v.SetDefault("ledger_path", def.LedgerPath)
	v.SetDefault("key_dir", def.KeyDir)
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("metrics_addr", def.MetricsAddr)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("rate_limit_per_minute", def.RateLimitPerMinute)

	v.SetEnvPrefix("shieldedtx")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("txd: reading config %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("txd: unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.NIn <= 0 || c.NOut <= 0 {
		return fmt.Errorf("txd: n_in and n_out must be positive, got %d/%d", c.NIn, c.NOut)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("txd: rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("txd: unknown log_level %q", c.LogLevel)
	}
	return nil
}
