package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the API process.
type Config struct {
	Port             string
	GinMode          string
	MonitoringAPIKey string
	ShutdownTimeout  time.Duration
	JWTSecret        string
	TokenTTL         time.Duration
	DB               DBConfig
}

// DBConfig describes how to reach PostgreSQL and size the connection pool.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is loaded first; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	return Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		GinMode:          getEnvOrDefault("GIN_MODE", "release"),
		MonitoringAPIKey: strings.TrimSpace(os.Getenv("MONITORING_API_KEY")),
		ShutdownTimeout:  time.Duration(getIntEnvOrDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:         time.Duration(getIntEnvOrDefault("JWT_TTL_HOURS", 24)) * time.Hour,
		DB: DBConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            getEnvOrDefault("DB_PORT", "5432"),
			User:            getEnvOrDefault("DB_USER", "postgres"),
			Password:        getEnvOrDefault("DB_PASSWORD", "password"),
			Name:            getEnvOrDefault("DB_NAME", "todos"),
			SSLMode:         getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnvOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnvOrDefault("DB_MAX_IDLE_CONNS", 25),
			ConnMaxIdleTime: time.Duration(getIntEnvOrDefault("DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute,
			ConnMaxLifetime: time.Duration(getIntEnvOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}

	return value
}
