package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	LogDir      string // empty disables file logging
	Debug       bool
	Upload      UploadConfig
}

// UploadConfig holds the upload pipeline's policy values. The values live
// here; the behavior they control lives in internal/service/upload.
type UploadConfig struct {
	ParserURL         string
	ParserEnabled     bool
	ParserTimeout     time.Duration
	MaxFileSizeMB     int64
	MaxProjectSizeMB  int64
	AllowedExtensions []string // nil means use the langmap registry defaults
}

// MaxFileBytes returns the single-file size cap in bytes.
func (u UploadConfig) MaxFileBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// MaxProjectBytes returns the aggregate project size cap in bytes.
func (u UploadConfig) MaxProjectBytes() int64 {
	return u.MaxProjectSizeMB * 1024 * 1024
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", ""),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
		Upload: UploadConfig{
			ParserURL:         getEnv("UPLOAD_PARSER_SERVICE_URL", "http://localhost:8001"),
			ParserEnabled:     getEnv("UPLOAD_PARSER_SERVICE_ENABLED", "true") == "true",
			ParserTimeout:     time.Duration(getEnvInt("UPLOAD_PARSER_SERVICE_TIMEOUT", 30)) * time.Second,
			MaxFileSizeMB:     int64(getEnvInt("UPLOAD_MAX_FILE_SIZE", 50)),
			MaxProjectSizeMB:  int64(getEnvInt("UPLOAD_MAX_PROJECT_SIZE", 500)),
			AllowedExtensions: getEnvList("UPLOAD_ALLOWED_EXTENSIONS"),
		},
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// getEnvList parses a comma-separated env var into a trimmed slice.
// Returns nil when the variable is unset so callers can fall back to
// registry defaults.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
