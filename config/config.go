package config

import (
	"fmt"
	"os"
	"strconv"
)

// ClickHouseConfig holds connection settings for the chat_logs store.
type ClickHouseConfig struct {
	Host       string
	NativePort int
	Database   string
	Username   string
	Password   string
}

// Config is built once at process start from the environment and handed
// into constructors by reference. Nothing else reads the environment.
type Config struct {
	Port           string
	FrontendOrigin string
	PostgresURL    string
	ClickHouse     ClickHouseConfig
	JWTSecret      string
	AuthAPIKey     string
	OpenAIAPIKey   string
}

// Load reads the process environment into a Config. Call godotenv.Load
// before this so a local .env file is picked up.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           os.Getenv("PORT"),
		FrontendOrigin: os.Getenv("FE_ORIGIN"),
		PostgresURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		AuthAPIKey:     os.Getenv("AUTH_DEFAULT"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		ClickHouse: ClickHouseConfig{
			Host:     os.Getenv("CLICKHOUSE_HOST"),
			Database: os.Getenv("CLICKHOUSE_DB_NAME"),
			Username: os.Getenv("CLICKHOUSE_USERNAME"),
			Password: os.Getenv("CLICKHOUSE_PASSWORD"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	nativePortStr := os.Getenv("CLICKHOUSE_NATIVE_PORT")
	if cfg.ClickHouse.Host == "" || nativePortStr == "" || cfg.ClickHouse.Database == "" {
		return nil, fmt.Errorf("CLICKHOUSE_HOST, CLICKHOUSE_NATIVE_PORT, or CLICKHOUSE_DB_NAME environment variables are not set")
	}
	nativePort, err := strconv.Atoi(nativePortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CLICKHOUSE_NATIVE_PORT: %w", err)
	}
	cfg.ClickHouse.NativePort = nativePort

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	return cfg, nil
}
