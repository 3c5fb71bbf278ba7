// Package config provides configuration loading and validation for the bot.
// Values come from defaults, an optional config.yaml, and BOT_* environment
// variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Log       LogConfig       `mapstructure:"log"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Tzkt      TzktConfig      `mapstructure:"tzkt"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Chart     ChartConfig     `mapstructure:"chart"`
}

// TelegramConfig holds the chat platform credentials.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// LogConfig controls logging verbosity and format.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`
}

// CoinGeckoConfig holds the price API endpoint and the tracked coin id.
type CoinGeckoConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Coin    string `mapstructure:"coin"     validate:"required"`
}

// TzktConfig holds the blockchain indexer API endpoint.
type TzktConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// HTTPConfig bounds outbound requests to the external APIs.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=2m"`
}

// ChartConfig controls the price chart day range.
type ChartConfig struct {
	DefaultDays int `mapstructure:"default_days" validate:"min=1"`
	MaxDays     int `mapstructure:"max_days"     validate:"min=1"`
}

// Load loads and validates configuration from:
// 1. Default values
// 2. config.yaml file
// 3. BOT_* environment variables
func Load() (*Config, error) {
	// Start from a clean viper state so repeated loads never see stale keys.
	viper.Reset()
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow missing config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values for optional configuration parameters.
// The token has no usable default; the empty default only registers the key
// so the BOT_TELEGRAM_TOKEN environment variable is picked up.
func setDefaults() {
	viper.SetDefault("telegram.token", "")

	viper.SetDefault("log.debug", false)
	viper.SetDefault("log.json", false)

	viper.SetDefault("coingecko.base_url", "https://api.coingecko.com")
	viper.SetDefault("coingecko.coin", "tezos")

	viper.SetDefault("tzkt.base_url", "https://api.tzkt.io")

	viper.SetDefault("http.timeout", 10*time.Second)

	viper.SetDefault("chart.default_days", 7)
	viper.SetDefault("chart.max_days", 365)
}
