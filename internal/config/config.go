// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	AWS         AWSConfig
	Chain       ChainConfig
	Payment     PaymentConfig
	Email       EmailConfig
	Frontend    FrontendConfig
}

type FrontendConfig struct {
	BaseURL string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

// DSN renders the key/value connection string the postgres driver expects.
// Timestamps are normalized to UTC at the connection level so purchase and
// audit rows compare cleanly across app instances.
func (d DatabaseConfig) DSN() string {
	pairs := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
		"password=" + d.Password,
		"dbname=" + d.Database,
		"sslmode=" + d.SSLMode,
		"TimeZone=UTC",
	}
	return strings.Join(pairs, " ")
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  int // in hours
	RefreshTokenTTL int // in hours
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type ChainConfig struct {
	Network string
	RPC_URL string
}

type PaymentConfig struct {
	StripeSecretKey      string
	StripePublishableKey string
	// Per-rail platform fee percentages. Card and stablecoin rails are
	// priced differently; the percent active at purchase time is persisted
	// on the purchase row.
	CardFeePercent       float64
	StablecoinFeePercent float64
	MinimumPayout        float64
	// Signed download URLs stay valid for this many seconds.
	DownloadURLTTL int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "design_marketplace"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL:  getEnvAsInt("JWT_ACCESS_TTL", 24),   // 24 hours
			RefreshTokenTTL: getEnvAsInt("JWT_REFRESH_TTL", 168), // 7 days
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "design-marketplace-assets"),
		},
		Chain: ChainConfig{
			Network: getEnv("CHAIN_NETWORK", "base"),
			RPC_URL: getEnv("CHAIN_RPC_URL", ""),
		},
		Payment: PaymentConfig{
			StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			CardFeePercent:       getEnvAsFloat("CARD_FEE_PERCENT", 12.0),
			StablecoinFeePercent: getEnvAsFloat("STABLECOIN_FEE_PERCENT", 15.0),
			MinimumPayout:        getEnvAsFloat("MINIMUM_PAYOUT", 10.0),
			DownloadURLTTL:       getEnvAsInt("DOWNLOAD_URL_TTL", 300), // 5 minutes
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@designly.io"),
			FromName:     getEnv("FROM_NAME", "Designly"),
		},
		Frontend: FrontendConfig{
			BaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Payment.CardFeePercent < 0 || c.Payment.CardFeePercent > 100 {
		return fmt.Errorf("card fee percent must be within [0,100]")
	}

	if c.Payment.StablecoinFeePercent < 0 || c.Payment.StablecoinFeePercent > 100 {
		return fmt.Errorf("stablecoin fee percent must be within [0,100]")
	}

	return nil
}

// FeePercentForRail resolves the platform fee percentage for a payment rail.
// "card" is the processor rail; everything else is a stablecoin network id.
func (c *Config) FeePercentForRail(rail string) float64 {
	if strings.EqualFold(rail, "card") {
		return c.Payment.CardFeePercent
	}
	return c.Payment.StablecoinFeePercent
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
