package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	LogLevel     string
	NatsURL      string
	NatsToken    string
	DatabaseURL  string
	SkyAuthURL   string
	SkySearchURL string
	SkyProviders string
	SkyUsername  string
	SkyPassword  string
	Workers      int
	ResultCap    int
}

func Load() Config {
	return Config{
		Port:         envInt("SKYPARSE_PORT", 8460),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		SkyAuthURL:   envStr("SKY_AUTH_URL", ""),
		SkySearchURL: envStr("SKY_SEARCH_URL", ""),
		SkyProviders: envStr("SKY_PROVIDERS_URL", ""),
		SkyUsername:  envStr("SKY_USERNAME", ""),
		SkyPassword:  envStr("SKY_PASSWORD", ""),
		Workers:      envInt("SEARCH_WORKERS", 5),
		ResultCap:    envInt("SEARCH_RESULT_CAP", 50),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
