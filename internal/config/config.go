// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
	RequestTimeout time.Duration
}

// StorageConfig selects and configures the key-value backend holding the
// persisted feed and order collections.
type StorageConfig struct {
	Backend      string
	Path         string // file and sqlite backends
	URI          string // postgres DATABASE_URL or mongo URI
	RedisAddr    string
	MongoDB      string
	WriteTimeout time.Duration
}

// MediaConfig configures the S3-compatible bucket for image uploads.
type MediaConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// Enabled reports whether enough is configured to reach the bucket.
func (m *MediaConfig) Enabled() bool {
	return m != nil && m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != ""
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Storage        *StorageConfig
	Media          *MediaConfig
	AllowedOrigins []string
	JWTSecret      string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           8080,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
		RequestTimeout: 5 * time.Second,
	}
}

// DefaultStorageConfig keeps everything in process memory.
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		Backend:      BackendMemory,
		Path:         "greenpatch-data.json",
		RedisAddr:    "localhost:6379",
		MongoDB:      "greenpatch",
		WriteTimeout: 3 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",       // Current directory
		"../../.env", // Project root when running from cmd/engine
		filepath.Join(os.Getenv("GOPATH"), "src/greenpatch/.env"),
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		// Silent when no .env exists
		_ = godotenv.Load()
	}

	serverConfig := DefaultConfig()

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %v", portStr, err)
		}
		serverConfig.Port = port
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %v", timeout, err)
		}
		serverConfig.RequestTimeout = d
	}

	storageConfig, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:         serverConfig,
		Storage:        storageConfig,
		Media:          loadMediaConfig(),
		AllowedOrigins: []string{"*"},
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "greenpatch_dev_secret"),
		Debug:          false,
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

func loadStorageConfig() (*StorageConfig, error) {
	storage := DefaultStorageConfig()
	storage.Backend = strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", storage.Backend))
	storage.Path = getEnvOrDefault("STORAGE_PATH", storage.Path)
	storage.RedisAddr = getEnvOrDefault("REDIS_ADDR", storage.RedisAddr)
	storage.MongoDB = getEnvOrDefault("MONGO_DB", storage.MongoDB)

	if timeout := os.Getenv("STORAGE_WRITE_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid STORAGE_WRITE_TIMEOUT %q: %v", timeout, err)
		}
		storage.WriteTimeout = d
	}

	switch storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite, BackendRedis:
	case BackendPostgres:
		storage.URI = os.Getenv("DATABASE_URL")
		if storage.URI == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when STORAGE_BACKEND is postgres")
		}
	case BackendMongo:
		storage.URI = os.Getenv("MONGO_URI")
		if storage.URI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required when STORAGE_BACKEND is mongo")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", storage.Backend)
	}
	return storage, nil
}

func loadMediaConfig() *MediaConfig {
	return &MediaConfig{
		Endpoint:  os.Getenv("MEDIA_ENDPOINT"),
		AccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
		SecretKey: os.Getenv("MEDIA_SECRET_KEY"),
		Bucket:    getEnvOrDefault("MEDIA_BUCKET", "greenpatch-media"),
		Secure:    os.Getenv("MEDIA_SECURE") == "1" || os.Getenv("MEDIA_SECURE") == "true",
	}
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
