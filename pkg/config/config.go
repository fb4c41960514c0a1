package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Log   LogConfig
	Store StoreConfig
}

type LogConfig struct {
	Level string
}

type StoreConfig struct {
	ConfigDir    string
	CachePath    string
	CacheEnabled bool
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists; environment variables take precedence
	_ = godotenv.Load()

	configDir := getEnv("GITPULSE_CONFIG_DIR", defaultConfigDir())

	AppConfig = &Config{
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			ConfigDir:    configDir,
			CachePath:    getEnv("GITPULSE_CACHE", filepath.Join(configDir, "cache.db")),
			CacheEnabled: !getEnvAsBool("GITPULSE_NO_CACHE", false),
		},
	}

	return nil
}

// defaultConfigDir resolves the per-user configuration directory,
// honoring XDG_CONFIG_HOME
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitpulse")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitpulse"
	}
	return filepath.Join(home, ".config", "gitpulse")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
