package logger

import "os"

// Config controls log verbosity and output encoding.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json", "console"
}

func DefaultConfig() *Config {
	return &Config{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
