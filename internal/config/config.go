// Package config reads storefront settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogJSON     = "json"
	CatalogSQLite   = "sqlite"
	CatalogPostgres = "postgres"

	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	CatalogSource  string
	CatalogPath    string
	CatalogDSN     string
	MigrationsPath string

	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	RedisTTL       time.Duration
	MongoURI       string
	MongoDBName    string
	BreakerEnabled bool

	KafkaBrokers  []string
	CheckoutTopic string
	KafkaGroupID  string

	SearchWorkers int

	CartMaxSessions int
	CartIdleTTL     time.Duration
}

// LoadEnv loads variables from the given .env files (".env" when none are
// named). Variables already set in the environment win. Missing files are
// not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CatalogSource:  strings.ToLower(getEnv("CATALOG_SOURCE", CatalogJSON)),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		CatalogDSN:     getEnv("CATALOG_DSN", "file:catalog.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "storefront"),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		CheckoutTopic:  getEnv("CHECKOUT_TOPIC", "checkout-completed"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "storefront-cart-consumer"),
	}

	var errs []error
	cfg.RequestTimeout = getDuration("REQUEST_TIMEOUT", 30*time.Second, &errs)
	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)
	cfg.RedisTTL = getDuration("REDIS_TTL", 7*24*time.Hour, &errs)
	cfg.SearchWorkers = getInt("SEARCH_WORKERS", 0, &errs)
	cfg.CartMaxSessions = getInt("CART_MAX_SESSIONS", 10000, &errs)
	cfg.CartIdleTTL = getDuration("CART_IDLE_TTL", 30*time.Minute, &errs)
	cfg.BreakerEnabled = getBool("BREAKER_ENABLED", true, &errs)

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	switch c.CatalogSource {
	case CatalogJSON:
	case CatalogSQLite, CatalogPostgres:
		if c.CatalogDSN == "" {
			errs = append(errs, fmt.Errorf("CATALOG_DSN is required for %s catalogs", c.CatalogSource))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE %q is not one of json, sqlite, postgres", c.CatalogSource))
	}

	switch c.StorageBackend {
	case StorageMemory, StorageRedis, StorageMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND %q is not one of memory, redis, mongo", c.StorageBackend))
	}

	if c.SearchWorkers < 0 {
		errs = append(errs, errors.New("SEARCH_WORKERS must not be negative"))
	}
	if c.CartMaxSessions <= 0 {
		errs = append(errs, errors.New("CART_MAX_SESSIONS must be positive"))
	}
	if c.CartIdleTTL <= 0 {
		errs = append(errs, errors.New("CART_IDLE_TTL must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
