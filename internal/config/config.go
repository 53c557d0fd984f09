package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTExpiry time.Duration

	LiveblocksSecretKey string
	LiveblocksBaseURL   string

	CORSOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	// Tokens are valid for 7 days unless overridden.
	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "168h"))
	if err != nil {
		expiry = 168 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "4000"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret: getEnvOrPanic("JWT_SECRET"),
		JWTExpiry: expiry,

		LiveblocksSecretKey: getEnv("LIVEBLOCKS_SECRET_KEY", ""),
		LiveblocksBaseURL:   getEnv("LIVEBLOCKS_BASE_URL", "https://api.liveblocks.io"),

		CORSOrigins: splitOrigins(getEnv("CORS_ORIGIN", "*")),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
