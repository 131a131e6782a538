package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort        = "8080"
	defaultPageSize       = 6
	defaultCacheTTL       = 5 * time.Minute
	defaultCORSOrigin     = "*"
	defaultAPIURL         = "http://localhost:8080"
	defaultCartDB         = "cart.db"
	defaultFilterDebounce = 500 * time.Millisecond
	defaultHTTPTimeout    = 10 * time.Second
)

// Config is shared by the catalog server and the storefront client.
type Config struct {
	// server
	DBURL      string
	AppPort    string
	AppEnv     string
	PageSize   int
	RedisURL   string
	CacheTTL   time.Duration
	CORSOrigin string

	// storefront client
	APIURL         string
	CartDB         string
	FilterDebounce time.Duration
	HTTPTimeout    time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:          os.Getenv("DB_URL"),
		AppPort:        getenv("APP_PORT", defaultAppPort),
		AppEnv:         os.Getenv("APP_ENV"),
		PageSize:       getenvInt("PRODUCT_PAGE_SIZE", defaultPageSize),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       getenvDuration("CACHE_TTL", defaultCacheTTL),
		CORSOrigin:     getenv("CORS_ORIGIN", defaultCORSOrigin),
		APIURL:         getenv("API_URL", defaultAPIURL),
		CartDB:         getenv("CART_DB", defaultCartDB),
		FilterDebounce: getenvDuration("FILTER_DEBOUNCE", defaultFilterDebounce),
		HTTPTimeout:    getenvDuration("HTTP_TIMEOUT", defaultHTTPTimeout),
	}

	// The server keeps running without a database; requests fail until it is reachable.
	if cfg.DBURL == "" {
		log.Println("DB_URL is not set")
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
