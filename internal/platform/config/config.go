package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultDatabaseURL      = "postgres://localhost:5432/currency_db"
	DefaultDatabaseUser     = "postgres"
	DefaultDatabasePassword = "postgres"
	DefaultPort             = "8080"
	DefaultCacheTTL         = 30 * time.Second
	DefaultStoreTimeout     = 5 * time.Second
	DefaultRateLimit        = "100-M"
	DefaultMigrationsPath   = "file://migrations"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	DatabaseUser     string
	DatabasePassword string
	Port             string
	IsProduction     bool
	EnableDBCheck    bool
	StoreTimeout     time.Duration

	// Rate cache
	CacheTTL               time.Duration
	CacheServeStaleOnError bool
	RecordTransactions     bool

	RateLimit          string
	CORSAllowedOrigins []string
	MigrationsPath     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("CACHE_SERVE_STALE_ON_ERROR", false)
	v.SetDefault("RECORD_TRANSACTIONS", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
		log.Printf("Warning: PGSQL_URL environment variable not set. Defaulting to %s\n", cfg.DatabaseURL)
	}

	cfg.DatabaseUser = v.GetString("PGSQL_USER")
	if cfg.DatabaseUser == "" {
		cfg.DatabaseUser = DefaultDatabaseUser
		log.Printf("Warning: PGSQL_USER environment variable not set. Defaulting to %s\n", cfg.DatabaseUser)
	}

	cfg.DatabasePassword = v.GetString("PGSQL_PASSWORD")
	if cfg.DatabasePassword == "" {
		cfg.DatabasePassword = DefaultDatabasePassword
		log.Println("Warning: PGSQL_PASSWORD environment variable not set. Using default password.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = DefaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.StoreTimeout = durationOrDefault(v, "STORE_TIMEOUT", DefaultStoreTimeout)
	cfg.CacheTTL = durationOrDefault(v, "CACHE_TTL", DefaultCacheTTL)

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = DefaultRateLimit
		log.Printf("Warning: RATE_LIMIT not set. Defaulting to %s.\n", cfg.RateLimit)
	}

	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = DefaultMigrationsPath
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.CacheServeStaleOnError = v.GetBool("CACHE_SERVE_STALE_ON_ERROR")
	cfg.RecordTransactions = v.GetBool("RECORD_TRANSACTIONS")

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	if raw == "" {
		log.Printf("Warning: %s not set. Defaulting to %s.\n", key, def.String())
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
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
