// Package config provides application configuration with support for
// environment variables, command-line overrides, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Logger   LoggerConfig
	Database DatabaseConfig
	Export   ExportConfig
	Metadata MetadataConfig
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // "text" or "json"
}

// DatabaseConfig holds the embedded database configuration.
type DatabaseConfig struct {
	// Path to the single database file (default: ~/.bookworm/bookworm.db).
	Path string
}

// ExportConfig holds XML export configuration.
type ExportConfig struct {
	// Dir is the directory export snapshots are written to
	// (default: directory of the database file).
	Dir string
}

// MetadataConfig holds remote book-metadata lookup configuration.
type MetadataConfig struct {
	// Endpoint of the Google Books volumes feed.
	Endpoint string
	// Timeout for a single lookup request.
	Timeout time.Duration
}

// Overrides carries command-line values that take precedence over the
// environment. Empty fields fall through to env, .env file, then defaults.
type Overrides struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	ExportDir    string
	EnvFile      string
}

// Load builds configuration with precedence:
// 1. Command-line overrides (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(ov Overrides) (*Config, error) {
	envFile := ov.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		Logger: LoggerConfig{
			Level:  getConfigValue(ov.LogLevel, "BOOKWORM_LOG_LEVEL", "info"),
			Format: getConfigValue(ov.LogFormat, "BOOKWORM_LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(ov.DatabasePath, "BOOKWORM_DB_PATH", ""),
		},
		Export: ExportConfig{
			Dir: getConfigValue(ov.ExportDir, "BOOKWORM_EXPORT_DIR", ""),
		},
		Metadata: MetadataConfig{
			Endpoint: getConfigValue("", "BOOKWORM_METADATA_ENDPOINT", ""),
		},
	}

	timeoutStr := getConfigValue("", "BOOKWORM_METADATA_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid metadata timeout %q: %w", timeoutStr, err)
	}
	cfg.Metadata.Timeout = timeout

	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	// Export dir defaults to the database directory.
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = filepath.Dir(cfg.Database.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "text" && c.Logger.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logger.Format)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Metadata.Timeout <= 0 {
		return errors.New("metadata timeout must be positive")
	}

	return nil
}

// expandDatabasePath resolves ~ and defaults the database location, creating
// the parent directory if needed.
func (c *Config) expandDatabasePath() error {
	path := c.Database.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".bookworm", "bookworm.db")
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	c.Database.Path = abs
	return nil
}

// getConfigValue returns a value from override, env var, or default.
func getConfigValue(override, envKey, defaultValue string) string {
	// Priority 1: Command-line override.
	if override != "" {
		return override
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already in the environment (env vars win over file).
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
