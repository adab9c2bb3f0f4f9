package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	Auth    AuthConfig
	Storage StorageConfig
}

type AuthConfig struct {
	Issuer          string
	Audience        string
	Algorithms      []string
	JWKSURL         string
	JWKSRefresh     time.Duration
	JWKSHTTPTimeout time.Duration
}

type StorageConfig struct {
	Backend      string
	Dir          string
	InventoryKey string
	UploadsKey   string

	Redis    RedisConfig
	S3       S3Config
	Postgres PostgresConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

type PostgresConfig struct {
	DatabaseURL string
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	refresh, err := time.ParseDuration(getEnv("AUTH_JWKS_REFRESH", "1h"))
	if err != nil {
		refresh = time.Hour
	}

	httpTimeout, err := time.ParseDuration(getEnv("AUTH_JWKS_TIMEOUT", "10s"))
	if err != nil {
		httpTimeout = 10 * time.Second
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Auth: AuthConfig{
			Issuer:          strings.TrimSpace(getEnv("AUTH_ISSUER", "")),
			Audience:        strings.TrimSpace(getEnv("AUTH_AUDIENCE", "")),
			Algorithms:      splitList(getEnv("AUTH_ALGORITHMS", "RS256")),
			JWKSURL:         getEnv("AUTH_JWKS_URL", ""),
			JWKSRefresh:     refresh,
			JWKSHTTPTimeout: httpTimeout,
		},

		Storage: StorageConfig{
			Backend:      strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			Dir:          getEnv("STORE_DIR", "./data"),
			InventoryKey: getEnv("INVENTORY_KEY", "inventory"),
			UploadsKey:   getEnv("UPLOADS_KEY", "uploads"),

			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       redisDB,
				Prefix:   getEnv("REDIS_PREFIX", "inventory-api:"),
			},
			S3: S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				Region:    getEnv("S3_REGION", "us-east-1"),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Prefix:    getEnv("S3_PREFIX", ""),
			},
			Postgres: PostgresConfig{
				DatabaseURL: getEnv("DATABASE_URL", ""),
			},
		},
	}

	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuthConfigured reports whether issuer and audience are both set. Without
// them every authenticated operation fails as a server configuration error.
func (c *Config) AuthConfigured() bool {
	return c.Auth.Issuer != "" && c.Auth.Audience != ""
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	case BackendS3:
		if s.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the %s backend", BackendS3)
		}
	case BackendPostgres:
		if s.Postgres.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", s.Backend)
	}

	if s.InventoryKey == "" || s.UploadsKey == "" {
		return fmt.Errorf("document keys must not be empty")
	}
	if s.InventoryKey == s.UploadsKey {
		return fmt.Errorf("INVENTORY_KEY and UPLOADS_KEY must differ")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
