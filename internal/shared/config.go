package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	APIBaseURL   string // upstream brokerage API
	UpstreamRPS  int
	MySQLDSN     string // empty disables the snapshot store
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SyncWorkers  int
	CacheTTL     time.Duration
	SessionTTL   time.Duration
	DemoFallback bool
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8090"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		APIBaseURL:   env("API_BASE_URL", "http://localhost:8000"),
		UpstreamRPS:  atoi("UPSTREAM_RPS", 5),
		MySQLDSN:     env("MYSQL_DSN", ""),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		SyncWorkers:  atoi("SYNC_WORKERS", 8),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SessionTTL:   time.Duration(atoi("SESSION_TTL_SECONDS", 86400)) * time.Second,
		DemoFallback: os.Getenv("DEMO_FALLBACK") == "1",
	}
	if c.APIBaseURL == "" {
		log.Warn().Msg("API_BASE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
