package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultAppName        = "WalletAPI"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour

	defaultMinDeposit  = "1"
	defaultMaxDeposit  = "10000"
	defaultMinWithdraw = "1"
	defaultMaxWithdraw = "5000"

	shutdownSecondsEnvVar = "SHUTDOWN_TIMEOUT_SECONDS"
	idemTTLSecondsEnvVar  = "IDEMPOTENCY_TTL_SECONDS"
)

// WalletLimits carries the four inclusive amount bounds supplied to the
// wallet amount policy.
type WalletLimits struct {
	MinDeposit  decimal.Decimal
	MaxDeposit  decimal.Decimal
	MinWithdraw decimal.Decimal
	MaxWithdraw decimal.Decimal
}

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
	Wallet         WalletLimits
}

// Load reads configuration values from the environment and populates a Config
// instance. DATABASE_URL and REDIS_URL are required outside development; in
// development the server falls back to in-memory backends when they are unset.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdempotencyTTL,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	}

	var err error
	if cfg.Wallet.MinDeposit, err = decimalEnv("WALLET_MIN_DEPOSIT", defaultMinDeposit); err != nil {
		return Config{}, err
	}
	if cfg.Wallet.MaxDeposit, err = decimalEnv("WALLET_MAX_DEPOSIT", defaultMaxDeposit); err != nil {
		return Config{}, err
	}
	if cfg.Wallet.MinWithdraw, err = decimalEnv("WALLET_MIN_WITHDRAW", defaultMinWithdraw); err != nil {
		return Config{}, err
	}
	if cfg.Wallet.MaxWithdraw, err = decimalEnv("WALLET_MAX_WITHDRAW", defaultMaxWithdraw); err != nil {
		return Config{}, err
	}

	if cfg.Wallet.MinDeposit.GreaterThan(cfg.Wallet.MaxDeposit) {
		return Config{}, fmt.Errorf("WALLET_MIN_DEPOSIT exceeds WALLET_MAX_DEPOSIT")
	}
	if cfg.Wallet.MinWithdraw.GreaterThan(cfg.Wallet.MaxWithdraw) {
		return Config{}, fmt.Errorf("WALLET_MIN_WITHDRAW exceeds WALLET_MAX_WITHDRAW")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
