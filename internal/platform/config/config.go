package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Quoting policy
	CommissionRatePercent decimal.Decimal // % taken from the destination-side amount
	RateMaxStaleness      time.Duration   // 0 disables the staleness check

	// Order lifecycle policy
	OrderTTL               time.Duration
	OrderNumberMaxAttempts int
	ExpirySweepInterval    time.Duration

	// Rate feed
	RateFeedEnabled       bool
	CoinGeckoURL          string
	RateUpdateInterval    time.Duration
	RateRequestTimeout    time.Duration
	RateFeedProfitPercent decimal.Decimal

	// Public API rate limit, in ulule/limiter formatted notation (e.g. "60-M")
	APIRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("COMMISSION_RATE_PERCENT", "2")
	viper.SetDefault("RATE_MAX_STALENESS", "0")
	viper.SetDefault("ORDER_TTL", "30m")
	viper.SetDefault("ORDER_NUMBER_MAX_ATTEMPTS", 5)
	viper.SetDefault("EXPIRY_SWEEP_INTERVAL", "1m")
	viper.SetDefault("RATE_FEED_ENABLED", true)
	viper.SetDefault("COINGECKO_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("RATE_UPDATE_INTERVAL", "60s")
	viper.SetDefault("RATE_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_FEED_PROFIT_PERCENT", "2")
	viper.SetDefault("API_RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	commission, err := decimal.NewFromString(viper.GetString("COMMISSION_RATE_PERCENT"))
	if err != nil || commission.IsNegative() {
		return nil, fmt.Errorf("invalid COMMISSION_RATE_PERCENT %q", viper.GetString("COMMISSION_RATE_PERCENT"))
	}
	cfg.CommissionRatePercent = commission

	cfg.RateMaxStaleness, err = parseDuration("RATE_MAX_STALENESS", 0)
	if err != nil {
		return nil, err
	}

	cfg.OrderTTL, err = parseDuration("ORDER_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.OrderNumberMaxAttempts = viper.GetInt("ORDER_NUMBER_MAX_ATTEMPTS")
	if cfg.OrderNumberMaxAttempts < 1 {
		cfg.OrderNumberMaxAttempts = 5
	}

	cfg.ExpirySweepInterval, err = parseDuration("EXPIRY_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.RateFeedEnabled = viper.GetBool("RATE_FEED_ENABLED")
	cfg.CoinGeckoURL = viper.GetString("COINGECKO_URL")

	cfg.RateUpdateInterval, err = parseDuration("RATE_UPDATE_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.RateRequestTimeout, err = parseDuration("RATE_REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	profit, err := decimal.NewFromString(viper.GetString("RATE_FEED_PROFIT_PERCENT"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_FEED_PROFIT_PERCENT %q", viper.GetString("RATE_FEED_PROFIT_PERCENT"))
	}
	cfg.RateFeedProfitPercent = profit

	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" || raw == "0" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
