package config

import (
	"fmt"
	"os"
)

// Config holds the runtime settings, all sourced from environment variables
type Config struct {
	Port        string
	LogLevel    string
	DatabaseDSN string
}

// Load reads the configuration from the environment. DB_CONN_STR wins when
// set; otherwise the DSN is assembled from the individual DB_* variables
// (Docker friendly), with local-development defaults.
func Load() *Config {
	cfg := &Config{
		Port:        getenv("PORT", "3000"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		DatabaseDSN: os.Getenv("DB_CONN_STR"),
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_NAME", "otabank"),
		)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
