package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Env        string
	ListenAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. godotenv is loaded by
// main before this runs.
func Load() *Config {
	return &Config{
		Env:        getenv("APP_ENV", "development"),
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "medihire"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:  getenv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL:  getduration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL: getduration("REFRESH_TOKEN_TTL", 14*24*time.Hour),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
	}
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
