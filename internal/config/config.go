package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Pricing  PricingConfig
	Checkout CheckoutConfig
	Sellers  SellersConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// PricingConfig holds the checkout pricing policy. All monetary values are
// integer minor currency units.
type PricingConfig struct {
	TaxRateBasisPoints    int64 // e.g. 1000 = 10%
	ShippingFee           int64
	FreeShippingThreshold int64
}

// CheckoutConfig holds checkout orchestration configuration.
type CheckoutConfig struct {
	// CardRouting selects how CARD checkouts with multiple orders reach
	// the capture step: "representative" or "per_order".
	CardRouting string
}

// SellersConfig holds seller roster source configuration. When S3 is enabled
// the roster files are read from the bucket, otherwise from the local file
// system.
type SellersConfig struct {
	FilePaths []string
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Prefix  string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "agora"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Pricing: PricingConfig{
			TaxRateBasisPoints:    getEnvAsInt64("TAX_RATE_BASIS_POINTS", 1000),
			ShippingFee:           getEnvAsInt64("SHIPPING_FEE", 30000),
			FreeShippingThreshold: getEnvAsInt64("FREE_SHIPPING_THRESHOLD", 500000),
		},
		Checkout: CheckoutConfig{
			CardRouting: getEnv("CARD_ROUTING", "representative"),
		},
		Sellers: SellersConfig{
			FilePaths: getEnvAsSlice("SELLER_ROSTER_FILES", []string{"data/sellers/roster.gz"}),
			S3Enabled: getEnvAsBool("SELLER_ROSTER_S3_ENABLED", false),
			S3Bucket:  getEnv("SELLER_ROSTER_S3_BUCKET", ""),
			S3Region:  getEnv("SELLER_ROSTER_S3_REGION", "us-east-1"),
			S3Prefix:  getEnv("SELLER_ROSTER_S3_PREFIX", "sellers/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Pricing.TaxRateBasisPoints < 0 {
		return fmt.Errorf("tax rate cannot be negative")
	}

	if c.Pricing.ShippingFee < 0 {
		return fmt.Errorf("shipping fee cannot be negative")
	}

	if c.Pricing.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold cannot be negative")
	}

	if c.Checkout.CardRouting != "representative" && c.Checkout.CardRouting != "per_order" {
		return fmt.Errorf("invalid card routing strategy: %s (must be representative or per_order)", c.Checkout.CardRouting)
	}

	if len(c.Sellers.FilePaths) == 0 {
		return fmt.Errorf("at least one seller roster file is required")
	}

	if c.Sellers.S3Enabled {
		if c.Sellers.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when roster S3 is enabled")
		}
		if c.Sellers.S3Region == "" {
			return fmt.Errorf("S3 region is required when roster S3 is enabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an int64 or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable or returns a
// default value.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
