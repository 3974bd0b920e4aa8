// Package config provides centralized default values for microsite-go
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

// loadEnvFile loads environment variables from .env file
func loadEnvFile() {
	envLoaded.Do(func() {
		loadEnvFileOnce()
	})
}

func loadEnvFileOnce() {
	file, err := os.Open(".env")
	if err != nil {
		// .env file is optional, don't error if it doesn't exist
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first = sign
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Only set if not already set in environment
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func init() {
	// Ensure .env is loaded before any config access
	loadEnvFile()
}

// getEnvInt reads environment variable with fallback to default
func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvString reads environment variable with string fallback
func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// getEnvDuration reads environment variable as duration with fallback
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		// Try as integer seconds
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// Server Configuration
var (
	Port = getEnvString("PORT", "8080")

	// PublicOrigin is the origin used when composing shareable preview links.
	PublicOrigin = getEnvString("PUBLIC_ORIGIN", "http://localhost:"+Port)

	ServerReadTimeout  = getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout  = getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// LogDebugChannels is a comma-separated list of log channels to run at
	// debug level, e.g. "share,storage".
	LogDebugChannels = getEnvString("LOG_DEBUG_CHANNELS", "")
)

// Storage Configuration
var (
	// MicrositeHome is the base directory for persisted builder state and media.
	MicrositeHome = getEnvString("MICROSITE_HOME", defaultHome())

	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBPath   = getEnvString("DB_PATH", "")

	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
)

// Builder Configuration
var (
	// FootprintCap bounds the per-instance activity log; oldest entries drop first.
	FootprintCap = getEnvInt("FOOTPRINT_CAP", 100)

	// ShareDebounce delays share-link recomputation after a state change.
	ShareDebounce = getEnvDuration("SHARE_DEBOUNCE", 500*time.Millisecond)

	// MediaCheckTimeout bounds advisory image/video URL validation probes.
	MediaCheckTimeout = getEnvDuration("MEDIA_CHECK_TIMEOUT", 5*time.Second)

	// SessionTTL bounds how long an idle builder session identifier is retained.
	SessionTTL = getEnvDuration("SESSION_TTL", 2*time.Hour)

	// SharePreviewActions is how many recent detailed actions travel in the
	// encoded footprint digest.
	SharePreviewActions = getEnvInt("SHARE_PREVIEW_ACTIONS", 5)
)

// Catalog Configuration
var (
	// CatalogDir holds optional YAML microsite template definitions layered
	// over the compiled-in catalog.
	CatalogDir = getEnvString("CATALOG_DIR", "")
)

// Outbound Configuration
var (
	ResendAPIKey   = getEnvString("RESEND_API_KEY", "")
	BuildEmailFrom = getEnvString("BUILD_REQUEST_EMAIL_FROM", "noreply@atriskmedia.com")
	BuildEmailTo   = getEnvString("BUILD_REQUEST_EMAIL_TO", "builds@atriskmedia.com")
	WhatsAppPhone  = getEnvString("BUILD_REQUEST_WHATSAPP", "")
)

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./microsite-data"
	}
	return home + "/microsite-go-server"
}
