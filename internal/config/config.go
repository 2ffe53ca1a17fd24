package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the seller tools and the stub server
type Config struct {
	ServiceName string        `yaml:"service_name"`
	APIBaseURL  string        `yaml:"api_base_url"`
	OwnerID     int64         `yaml:"owner_id"`
	LogLevel    string        `yaml:"log_level"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	ReadRetries int           `yaml:"read_retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`

	// Stub server settings
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	PGDSN      string `yaml:"pg_dsn"`
}

// Load loads configuration from an optional YAML file, a .env file and
// environment variables. Environment variables win over the YAML file.
func Load() *Config {
	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: "bookhive-seller",
		APIBaseURL:  "http://localhost:9191",
		LogLevel:    "info",
		CacheTTL:    2 * time.Minute,
		ReadRetries: 3,
		RetryDelay:  500 * time.Millisecond,
		ListenAddr:  ":9191",
		DBPath:      "bookhive.db",
	}

	if path := getEnv("CONFIG_FILE", "bookhive.yaml"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			// A malformed config file is ignored; env vars still apply
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.OwnerID = getEnvInt64("OWNER_ID", cfg.OwnerID)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.ReadRetries = getEnvInt("READ_RETRIES", cfg.ReadRetries)
	cfg.RetryDelay = getEnvDuration("RETRY_DELAY", cfg.RetryDelay)
	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.PGDSN = getEnv("PG_DSN", cfg.PGDSN)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
