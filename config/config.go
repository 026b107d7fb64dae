package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the service.
type Config struct {
	Port         string
	Env          string
	StoreBackend string
	DataDir      string
	JWTSecret    string

	KafkaBrokers     string
	OrderEventsTopic string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
}

// LoadConfig reads configuration from environment variables, with a .env file
// as fallback for local runs.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		StoreBackend: getEnv("STORE_BACKEND", BackendFile),
		DataDir:      getEnv("DATA_DIR", ".data"),
		JWTSecret:    getEnv("JWT_SECRET", "chickenmaster-dev-secret"),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order.events"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Dakar"),
	}

	switch cfg.StoreBackend {
	case BackendFile:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("DATA_DIR is required for the file backend")
		}
	case BackendPostgres:
		if cfg.PostgresUser == "" || cfg.PostgresPassword == "" ||
			cfg.PostgresDB == "" || cfg.PostgresHost == "" {
			return nil, fmt.Errorf("postgres config incomplete")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
