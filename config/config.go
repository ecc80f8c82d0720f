package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTKey = "defaultSecret"

// Config holds application configuration
type Config struct {
	Port string
	Env  string

	DBDriver       string // postgres, mysql, sqlite
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTKey    string
	TokenTTL  time.Duration
	SaltRound int

	CORSOrigin      string
	RateLimitMax    int
	RateLimitWindow time.Duration

	ReconcileSchedule    string
	CompletionWebhookURL string
	WebhookTimeout       time.Duration
}

// Load initializes configuration from the .env file (if present) and the
// environment. Warnings about fallbacks are returned alongside the config so
// the caller can log them once a logger exists.
func Load() (*Config, []string, error) {
	var warnings []string

	if err := godotenv.Load(); err != nil {
		warnings = append(warnings, ".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  strings.ToLower(getEnv("APP_ENV", "development")),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", ""),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "campy"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10, &warnings),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5, &warnings),

		JWTKey:    getEnv("JWT_SECRET_KEY", defaultJWTKey),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 7*24*time.Hour, &warnings),
		SaltRound: getEnvInt("SALT_ROUND", 10, &warnings),

		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100, &warnings),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute, &warnings),

		ReconcileSchedule:    getEnv("RECONCILE_SCHEDULE", "@daily"),
		CompletionWebhookURL: getEnv("COMPLETION_WEBHOOK_URL", ""),
		WebhookTimeout:       getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second, &warnings),
	}

	if cfg.JWTKey == defaultJWTKey {
		if !cfg.IsDevelopment() {
			return nil, warnings, fmt.Errorf("JWT_SECRET_KEY must be set when APP_ENV=%s", cfg.Env)
		}
		warnings = append(warnings, "using default JWT_SECRET_KEY, update it in your environment")
	}

	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, warnings, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, warnings, nil
}

// IsDevelopment reports whether verbose error detail may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// DSN builds the driver specific connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	switch c.DBDriver {
	case "mysql":
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, port, c.DBName)
	case "sqlite":
		return c.DBName
	default:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int, warnings *[]string) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s=%q, using %d", key, value, defaultValue))
		return defaultValue
	}
	return intValue
}

func getEnvDuration(key string, defaultValue time.Duration, warnings *[]string) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		*warnings = append(*warnings, fmt.Sprintf("invalid %s=%q, using %s", key, value, defaultValue))
		return defaultValue
	}
	return d
}
