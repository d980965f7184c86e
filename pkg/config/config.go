package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage
	Storage StorageConfig

	// Profiling
	Profile ProfileConfig

	// Upload throttling
	Upload UploadConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// StorageConfig holds the working directories and retention policy.
type StorageConfig struct {
	InputDir      string
	OutputDir     string
	Retention     time.Duration // files older than this are swept; <=0 disables
	SweepSchedule string        // cron expression with seconds field
}

// ProfileConfig holds tunables for the analysis stage.
type ProfileConfig struct {
	CorrelationThreshold float64 // |r| above this is reported as a strong pair
	HistogramBins        int
}

// UploadConfig holds the upload size cap and rate limit.
type UploadConfig struct {
	MaxBytes int64
	Rate     int // accepted uploads per second; <=0 disables limiting
	Burst    int
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Storage
		Storage: StorageConfig{
			InputDir:      getEnv("INPUT_DIR", "input"),
			OutputDir:     getEnv("OUTPUT_DIR", "output"),
			Retention:     getEnvAsDuration("RETENTION", "24h"),
			SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 0 * * * *"),
		},

		// Profiling
		Profile: ProfileConfig{
			CorrelationThreshold: getEnvAsFloat("CORRELATION_THRESHOLD", 0.5),
			HistogramBins:        getEnvAsInt("HISTOGRAM_BINS", 30),
		},

		// Upload throttling
		Upload: UploadConfig{
			MaxBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 16*1024*1024),
			Rate:     getEnvAsInt("UPLOAD_RATE", 5),
			Burst:    getEnvAsInt("UPLOAD_BURST", 10),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Storage.InputDir == "" {
		return fmt.Errorf("INPUT_DIR is required")
	}
	if c.Storage.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	// Report lookup assumes the output dir holds nothing but reports.
	if c.Storage.InputDir == c.Storage.OutputDir {
		return fmt.Errorf("INPUT_DIR and OUTPUT_DIR must differ")
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	if c.Profile.CorrelationThreshold <= 0 || c.Profile.CorrelationThreshold >= 1 {
		return fmt.Errorf("CORRELATION_THRESHOLD must be between 0 and 1 exclusive")
	}
	if c.Profile.HistogramBins < 1 {
		return fmt.Errorf("HISTOGRAM_BINS must be at least 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
