package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	CORSOrigin      string
	// Redis holds the persisted operator credentials and the list cache
	RedisURL string
	CacheTTL time.Duration
}

func Load() Config {
	return Config{
		Addr:            getenv("CONSOLE_ADDR", ":8690"),
		UpstreamURL:     getenv("SAKAN_UPSTREAM_URL", "http://localhost:5000/api"),
		UpstreamTimeout: time.Duration(getenvInt("SAKAN_UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		CORSOrigin:      getenv("CONSOLE_CORS_ORIGIN", "*"),
		RedisURL:        getenv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:        time.Duration(getenvInt("CONSOLE_CACHE_TTL_SECONDS", 60)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
