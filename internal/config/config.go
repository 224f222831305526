package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	App         AppConfig
	Extension   ExtensionConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ShopifyConfig struct {
	ShopDomain        string
	AccessToken       string
	APIVersion        string
	APIKey            string  // SHOPIFY_API_KEY: expected "aud" of extension session tokens
	APISecret         string  // SHOPIFY_API_SECRET: HS256 key of extension session tokens
	RequestsPerSecond float64 // outbound Admin API throttle
}

// AppConfig describes the app itself as Shopify sees it
type AppConfig struct {
	Host        string // APP_HOST: public URL, used as billing return URL
	TestCharges bool   // APP_TEST_CHARGES: create billing in test mode
}

// ExtensionConfig is used by clients that act as the admin extension (sellingplanctl)
type ExtensionConfig struct {
	Endpoint     string // EXTENSION_ENDPOINT: app server base URL, e.g. https://app.example.com/api/extension
	SessionToken string // EXTENSION_SESSION_TOKEN: static token for terminal sessions
}

// Load reads configuration for the app server. Shopify credentials are required.
func Load() (*Config, error) {
	cfg, err := LoadOptional()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}
	if cfg.Shopify.APISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_SECRET is required")
	}

	return cfg, nil
}

// LoadOptional reads configuration without enforcing server-only requirements.
func LoadOptional() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	rps, err := strconv.ParseFloat(getEnvOrViper("SHOPIFY_REQUESTS_PER_SECOND", "2"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("SHOPIFY_REQUESTS_PER_SECOND must be a positive number")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "sellingplans"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:        strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken:       strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:        getEnvOrViper("SHOPIFY_API_VERSION", "2024-10"),
			APIKey:            strings.TrimSpace(getEnvOrViper("SHOPIFY_API_KEY", "")),
			APISecret:         strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
			RequestsPerSecond: rps,
		},
		App: AppConfig{
			Host:        strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("APP_HOST", "")), "/"),
			TestCharges: getEnvOrViper("APP_TEST_CHARGES", "true") == "true",
		},
		Extension: ExtensionConfig{
			Endpoint:     strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("EXTENSION_ENDPOINT", "http://localhost:8080/api/extension")), "/"),
			SessionToken: strings.TrimSpace(getEnvOrViper("EXTENSION_SESSION_TOKEN", "")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
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
