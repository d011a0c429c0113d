package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Logger:   LoggerConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{Path: "/some/path/bookworm.db"},
		Metadata: MetadataConfig{Timeout: 30 * time.Second},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"ERROR", true}, // level comparison is case-insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{
				Logger:   LoggerConfig{Level: tt.level, Format: "text"},
				Database: DatabaseConfig{Path: "/some/path/bookworm.db"},
				Metadata: MetadataConfig{Timeout: time.Second},
			}
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOKWORM_DB_PATH", filepath.Join(dir, "catalog.db"))

	cfg, err := Load(Overrides{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
	assert.Equal(t, filepath.Join(dir, "catalog.db"), cfg.Database.Path)
	assert.Equal(t, dir, cfg.Export.Dir)
	assert.Equal(t, 30*time.Second, cfg.Metadata.Timeout)
}

func TestLoad_OverridesBeatEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOOKWORM_DB_PATH", filepath.Join(dir, "env.db"))
	t.Setenv("BOOKWORM_LOG_LEVEL", "error")

	cfg, err := Load(Overrides{
		DatabasePath: filepath.Join(dir, "flag.db"),
		EnvFile:      filepath.Join(dir, "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "flag.db"), cfg.Database.Path)
	assert.Equal(t, "error", cfg.Logger.Level)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "# bookworm settings\nBOOKWORM_DB_PATH=" + filepath.Join(dir, "fromfile.db") + "\nBOOKWORM_LOG_FORMAT=\"json\"\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	// Ensure the keys are not already set; t.Setenv restores them afterwards.
	t.Setenv("BOOKWORM_DB_PATH", "")
	t.Setenv("BOOKWORM_LOG_FORMAT", "")

	cfg, err := Load(Overrides{EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "fromfile.db"), cfg.Database.Path)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_CreatesDatabaseDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "deeper", "bookworm.db")

	cfg, err := Load(Overrides{DatabasePath: dbPath, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Dir(cfg.Database.Path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
