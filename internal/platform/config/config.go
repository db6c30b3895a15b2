package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration

	B2AccountID string
	B2AppKey    string
	B2Bucket    string

	BcryptCost int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "campus"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	issuer := os.Getenv("TOKEN_ISSUER")
	if issuer == "" {
		issuer = "campus"
	}

	ttl := 72 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		TokenSecret: os.Getenv("TOKEN_SECRET"),
		TokenIssuer: issuer,
		TokenTTL:    ttl,

		B2AccountID: os.Getenv("B2_ACCOUNT_ID"),
		B2AppKey:    os.Getenv("B2_APP_KEY"),
		B2Bucket:    os.Getenv("B2_BUCKET"),

		BcryptCost: envInt("BCRYPT_COST", 0),
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
