package config

import (
	"os"
	"strconv"
)

// Config holds all application-level configuration
type Config struct {
	// Database (optional: empty disables the Postgres archive)
	DatabaseURL string

	// Scanner
	Headless        bool
	ScanTimeoutSec  int
	MaxInteractions int // interaction/pagination rounds per campground
	ScanConcurrency int
	RateLimitDelay  int // milliseconds between navigations
	MaxRetries      int

	// Search defaults (overridable per run via env)
	ArrivalDate    string // YYYY-MM-DD
	DepartureDate  string // YYYY-MM-DD
	PartySize      int
	EquipmentID    string
	SubEquipmentID string

	// Input / output
	CampgroundsFile string // empty: use the built-in sample list
	CSVFilePath     string
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Headless:        getEnvBool("HEADLESS", true),
		ScanTimeoutSec:  getEnvInt("SCAN_TIMEOUT_SEC", 90),
		MaxInteractions: getEnvInt("MAX_INTERACTIONS", 4),
		ScanConcurrency: getEnvInt("SCAN_CONCURRENCY", 2),
		RateLimitDelay:  getEnvInt("RATE_LIMIT_DELAY_MS", 2000),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		ArrivalDate:     getEnv("ARRIVAL_DATE", ""),
		DepartureDate:   getEnv("DEPARTURE_DATE", ""),
		PartySize:       getEnvInt("PARTY_SIZE", 2),
		EquipmentID:     getEnv("EQUIPMENT_ID", "-32768"),
		SubEquipmentID:  getEnv("SUB_EQUIPMENT_ID", "-32765"),
		CampgroundsFile: getEnv("CAMPGROUNDS_FILE", ""),
		CSVFilePath:     getEnv("CSV_FILE_PATH", "output/availability.csv"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
