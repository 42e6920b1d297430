package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	DatabasePath string
	LogLevel     string

	// DefaultTotalAcres is used when a compute request omits total_acres.
	DefaultTotalAcres float64

	// MaxRequestBytes caps the compute request body size.
	MaxRequestBytes int64

	// Rate limiting for the public API.
	RateLimitInterval time.Duration
	RateLimitBurst    int

	// Report cache tuning.
	ReportCacheExpiry   time.Duration
	ReportCacheCleanup  time.Duration
	RunHistoryPageLimit int
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	defaultTotalAcresStr := getEnv("DEFAULT_TOTAL_ACRES", "160")
	defaultTotalAcres, err := strconv.ParseFloat(defaultTotalAcresStr, 64)
	if err != nil || defaultTotalAcres <= 0 {
		log.Printf("WARNING: Invalid DEFAULT_TOTAL_ACRES '%s'. Using default 160. Error: %v", defaultTotalAcresStr, err)
		defaultTotalAcres = 160
	}

	maxRequestBytesStr := getEnv("MAX_REQUEST_BYTES", "5242880")
	maxRequestBytes, err := strconv.ParseInt(maxRequestBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_REQUEST_BYTES format '%s'. Using default 5MB. Error: %v", maxRequestBytesStr, err)
		maxRequestBytes = 5 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./titlechain.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		DefaultTotalAcres: defaultTotalAcres,
		MaxRequestBytes:   maxRequestBytes,

		RateLimitInterval: getEnvAsDuration("RATE_LIMIT_INTERVAL", 100*time.Millisecond),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 30),

		ReportCacheExpiry:   getEnvAsDuration("REPORT_CACHE_EXPIRY", 15*time.Minute),
		ReportCacheCleanup:  getEnvAsDuration("REPORT_CACHE_CLEANUP", 30*time.Minute),
		RunHistoryPageLimit: getEnvAsInt("RUN_HISTORY_PAGE_LIMIT", 50),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, DefaultTotalAcres=%.0f",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.DefaultTotalAcres)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
