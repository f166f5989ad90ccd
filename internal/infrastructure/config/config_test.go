package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/damon-houk/expense-tracker/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel)
	assert.True(t, cfg.SyncWrites)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPENSES_DATA_DIR", "/var/lib/expenses")
	t.Setenv("EXPENSES_ADDR", ":9090")
	t.Setenv("EXPENSES_LOG_LEVEL", "debug")
	t.Setenv("EXPENSES_SYNC_WRITES", "false")
	t.Setenv("EXPENSES_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/expenses", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
	assert.False(t, cfg.SyncWrites)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPENSES_ADDR=:7070\n"), 0o600))
	chdir(t, dir)
	// godotenv never overrides variables that are already set; make sure the
	// variable is unset for this test and restored afterwards.
	t.Setenv("EXPENSES_ADDR", "")
	require.NoError(t, os.Unsetenv("EXPENSES_ADDR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPENSES_LOG_LEVEL", "chatty")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DataDir: "", Addr: "", ShutdownTimeout: 0}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
	assert.Contains(t, err.Error(), "listen address")
	assert.Contains(t, err.Error(), "shutdown timeout")

	ok := &Config{DataDir: "d", Addr: ":1", ShutdownTimeout: time.Second}
	assert.NoError(t, ok.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
