package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable through DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	EnableDBCheck bool

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	JWTSecret string
	JWTIssuer string
	RateLimit string // ulule/limiter formatted rate, e.g. "120-M"

	// Group confirmation polling used by EnsureGroupExists
	GroupConfirmAttempts int
	GroupConfirmInterval time.Duration

	// Service accounts that never show up in balance responses
	BalanceExcludedAccounts []string

	CORSAllowedOrigins []string
	PosthogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "./data/splitledger.db")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "splitledger")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("GROUP_CONFIRM_ATTEMPTS", 10)
	v.SetDefault("GROUP_CONFIRM_INTERVAL", "2s")
	v.SetDefault("BALANCE_EXCLUDED_ACCOUNTS", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		PosthogAPIKey: v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverSQLite, DriverMemory:
	default:
		log.Printf("Warning: Unknown DB_DRIVER ('%s'). Defaulting to %s.\n", cfg.DBDriver, DriverPostgres)
		cfg.DBDriver = DriverPostgres
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.GroupConfirmAttempts = v.GetInt("GROUP_CONFIRM_ATTEMPTS")
	if cfg.GroupConfirmAttempts < 1 {
		log.Printf("Warning: Invalid value for GROUP_CONFIRM_ATTEMPTS (%d). Defaulting to 10.\n", cfg.GroupConfirmAttempts)
		cfg.GroupConfirmAttempts = 10
	}

	intervalStr := v.GetString("GROUP_CONFIRM_INTERVAL")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil || interval < 0 {
		interval = 2 * time.Second
		log.Printf("Warning: Invalid value for GROUP_CONFIRM_INTERVAL ('%s'). Defaulting to %s.\n", intervalStr, interval)
	}
	cfg.GroupConfirmInterval = interval

	cfg.BalanceExcludedAccounts = splitList(v.GetString("BALANCE_EXCLUDED_ACCOUNTS"), true)
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"), false)

	return cfg
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lower {
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return out
}
