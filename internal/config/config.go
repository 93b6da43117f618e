package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	Cart        CartConfig
	Catalog     CatalogConfig
	Checkout    CheckoutConfig
	Database    DatabaseConfig
	Admin       AdminConfig
	LogLevel    string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CartConfig struct {
	RollbackOnFailure bool
	ReconcileInterval time.Duration
}

type CatalogConfig struct {
	PlaceholderImages []string
}

type CheckoutConfig struct {
	QRPaymentBase string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether receipts are persisted
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type AdminConfig struct {
	KeyHash string
}

const defaultPlaceholderImages = "/public/coffee-breed-1.jpg,/public/coffee-breed-2.jpg,/public/coffee-breed-3.jpg,/public/coffee-breed-4.jpg"

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:3333")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// .env is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	backendTimeout, err := getDurationOrViper("BACKEND_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	reconcileInterval, err := getDurationOrViper("CART_RECONCILE_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	rollback, err := getBoolOrViper("CART_ROLLBACK_ON_FAILURE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL: getEnvOrViper("BACKEND_BASE_URL", "http://localhost:3333"),
			Timeout: backendTimeout,
		},
		Cart: CartConfig{
			RollbackOnFailure: rollback,
			ReconcileInterval: reconcileInterval,
		},
		Catalog: CatalogConfig{
			PlaceholderImages: splitList(getEnvOrViper("PLACEHOLDER_IMAGES", defaultPlaceholderImages)),
		},
		Checkout: CheckoutConfig{
			QRPaymentBase: getEnvOrViper("QR_PAYMENT_BASE", "coffeeshop://pay"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", ""),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "coffeeshop"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Admin: AdminConfig{
			KeyHash: getEnvOrViper("ADMIN_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.Backend.Timeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if cfg.Cart.ReconcileInterval < 0 {
		return nil, fmt.Errorf("CART_RECONCILE_INTERVAL must not be negative")
	}
	if cfg.Environment == "production" && cfg.Admin.KeyHash == "" {
		return nil, fmt.Errorf("ADMIN_KEY_HASH is required in production")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getDurationOrViper(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBoolOrViper(key string, defaultValue bool) (bool, error) {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
