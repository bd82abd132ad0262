package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Database DatabaseConfig
	Redis    RedisConfig
	Shopify  ShopifyConfig
	AppSync  AppSyncConfig
	GenAI    GenAIConfig

	// AuthorizedEmails is the static admin allow-list (AUTHORIZED_EMAILS,
	// comma-separated). A valid bearer token whose email is not in this list
	// is rejected with 403.
	AuthorizedEmails []string

	// UseAPrefix re-maps every variable through an A_-prefixed alias so a
	// secondary deployment can share one environment file.
	UseAPrefix bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr string
}

type ShopifyConfig struct {
	StoreURL      string
	AdminToken    string
	APIVersion    string
	WebhookSecret string // verify incoming Shopify webhooks (X-Shopify-Hmac-Sha256)
	LocationID    string // default fulfillment location for inventory adjustments
}

// AppSyncConfig points at the storefront's GraphQL backend. AdminSecret is
// server-only and added to mutation requests; it must never reach a browser.
type AppSyncConfig struct {
	URL         string
	APIKey      string
	AdminSecret string
}

type GenAIConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("GENAI_MODEL", "gemini-2.0-flash")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	useAPrefix := strings.EqualFold(resolve("USE_A_PREFIX", "", false), "true")

	get := func(key, def string) string {
		return resolve(key, def, useAPrefix)
	}

	cfg := &Config{
		Port:        get("PORT", "8080"),
		Environment: get("ENVIRONMENT", "development"),
		LogLevel:    get("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			User:     get("DB_USER", "postgres"),
			Password: get("DB_PASSWORD", "postgres"),
			DBName:   get("DB_NAME", "candleadmin"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: get("REDIS_ADDR", "localhost:6379"),
		},
		Shopify: ShopifyConfig{
			StoreURL:      strings.TrimSpace(get("SHOPIFY_STORE_URL", "")),
			AdminToken:    strings.TrimSpace(get("SHOPIFY_ADMIN_TOKEN", "")),
			APIVersion:    get("SHOPIFY_API_VERSION", "2024-10"),
			WebhookSecret: strings.TrimSpace(get("SHOPIFY_WEBHOOK_SECRET", "")),
			LocationID:    strings.TrimSpace(get("SHOPIFY_LOCATION_ID", "")),
		},
		AppSync: AppSyncConfig{
			URL:         strings.TrimSpace(get("APPSYNC_URL", "")),
			APIKey:      strings.TrimSpace(get("APPSYNC_API_KEY", "")),
			AdminSecret: strings.TrimSpace(get("APPSYNC_ADMIN_SECRET", "")),
		},
		GenAI: GenAIConfig{
			APIKey: strings.TrimSpace(get("GENAI_API_KEY", "")),
			Model:  get("GENAI_MODEL", "gemini-2.0-flash"),
		},
		AuthorizedEmails: splitCSV(get("AUTHORIZED_EMAILS", "")),
		UseAPrefix:       useAPrefix,
	}

	// Validate required fields
	if cfg.Shopify.StoreURL == "" {
		return nil, fmt.Errorf("SHOPIFY_STORE_URL is required")
	}
	if cfg.Shopify.AdminToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ADMIN_TOKEN is required")
	}

	return cfg, nil
}

// IsEmailAuthorized reports whether email is on the allow-list
// (case-insensitive).
func (c *Config) IsEmailAuthorized(email string) bool {
	for _, allowed := range c.AuthorizedEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}

// resolve looks a key up in the environment, then viper, then the default.
// With the A-prefix indirection on, the A_-prefixed alias wins over the bare
// name at each level.
func resolve(key, defaultValue string, useAPrefix bool) string {
	keys := []string{key}
	if useAPrefix {
		keys = []string{"A_" + key, key}
	}
	for _, k := range keys {
		if val := os.Getenv(k); val != "" {
			return val
		}
	}
	for _, k := range keys {
		if viper.IsSet(k) {
			if val := viper.GetString(k); val != "" {
				return val
			}
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
