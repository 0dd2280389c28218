package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// Storage
	StorageBackend string // memory, file, redis or mongo
	StorageDir     string

	// MongoDB (only required for the mongo storage backend)
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret       string
	JwtTTL          time.Duration
	SessionCacheTTL time.Duration

	// Server
	ApiPort string

	// Payments
	PaymentProcessingDelay time.Duration
	OverdueSweepInterval   time.Duration

	// Media uploads
	UploadMaxSizeMB int

	// AWS S3
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	MediaBaseS3URL     string

	// Notifications
	NotifyLogPath string

	// App Defaults
	AppName              string
	DefaultAdminEmail    string
	DefaultAdminPassword string

	// Rate Limiting Defaults
	RateLimitSoftBucketSize int
	RateLimitSoftRefillRate int // tokens per second
	RateLimitHardBucketSize int
	RateLimitHardRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	// Load basic string values
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", "file")
	cfg.StorageDir = getEnv("STORAGE_DIR", "./data")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.MediaBaseS3URL = getEnv("MEDIA_BASE_S3_URL", "")
	cfg.NotifyLogPath = getEnv("NOTIFY_LOG_PATH", "")
	cfg.AppName = getEnv("APP_NAME", "RentDesk")
	cfg.DefaultAdminEmail = getEnv("DEFAULT_ADMIN_EMAIL", "admin@example.com")
	cfg.DefaultAdminPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "password")

	// The mongo backend is the only one that cannot start without its settings.
	switch cfg.StorageBackend {
	case "memory", "file", "redis":
	case "mongo":
		cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
		if err != nil {
			return nil, err
		}
		cfg.MongoDbName = getEnv("MONGO_DB_NAME", "rentdesk")
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %s", cfg.StorageBackend)
	}

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	sessionTTLSeconds, err := strconv.ParseInt(getEnv("SESSION_CACHE_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.SessionCacheTTL = time.Duration(sessionTTLSeconds) * time.Second

	processingDelayMs, err := strconv.ParseInt(getEnv("PAYMENT_PROCESSING_DELAY_MS", "2000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_PROCESSING_DELAY_MS: %w", err)
	}
	cfg.PaymentProcessingDelay = time.Duration(processingDelayMs) * time.Millisecond

	sweepIntervalMinutes, err := strconv.ParseInt(getEnv("OVERDUE_SWEEP_INTERVAL_MINUTES", "60"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OVERDUE_SWEEP_INTERVAL_MINUTES: %w", err)
	}
	cfg.OverdueSweepInterval = time.Duration(sweepIntervalMinutes) * time.Minute

	cfg.UploadMaxSizeMB, err = strconv.Atoi(getEnv("UPLOAD_MAX_SIZE_MB", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE_MB: %w", err)
	}

	// Rate Limiting
	cfg.RateLimitSoftBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_BUCKET_SIZE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitSoftRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_REFILL_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_REFILL_RATE: %w", err)
	}
	cfg.RateLimitHardBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitHardRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
