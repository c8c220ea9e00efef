package utils

import (
	"os"
	"strconv"

	"github.com/screenrate/screenrate-backend/internal/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	return value
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	value := os.Getenv(key)
	if value == "" {
		log.Debug("Env var not set, using fallback", "key", key, "fallback", fallback)
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("Env var is not an integer, using fallback", "key", key, "value", value)
		return fallback
	}
	return parsed
}
