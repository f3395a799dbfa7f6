// Package server implements the HTTP interface of the solver service.
package server

import (
	"os"
	"strconv"
)

// Config holds solverd settings, loaded from the environment.
type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
}

// LoadConfig reads configuration from environment variables, with defaults
// matching a local development setup.
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "5000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
