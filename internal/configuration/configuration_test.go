package configuration

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Environment-reading tests run sequentially, so [testing.T.Setenv] cannot
// race between them.

// TestLoad_Success_Defaults tests the defaults with nothing configured.
func TestLoad_Success_Defaults(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	cfg, err := c.Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Root)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.ShowHidden)
	assert.Equal(t, uint64(defaultCopyBufferSize), cfg.CopyBufferSize)
	assert.Equal(t, defaultWorkers, cfg.Workers)
}

// TestLoad_Success_FromFile tests loading all keys from an environment file.
func TestLoad_Success_FromFile(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	envFile := filepath.Join(t.TempDir(), "crossfs.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"CROSSFS_ROOT=/data\n"+
			"CROSSFS_LOG_LEVEL=debug\n"+
			"CROSSFS_SHOW_HIDDEN=true\n"+
			"CROSSFS_COPY_BUFFER=1MiB\n"+
			"CROSSFS_WORKERS=4\n",
	), 0o644))

	cfg, err := c.Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.Root)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.ShowHidden)
	assert.Equal(t, uint64(1<<20), cfg.CopyBufferSize)
	assert.Equal(t, 4, cfg.Workers)
}

// TestLoad_Success_EnvOverridesFile tests the process environment taking
// precedence over file values.
func TestLoad_Success_EnvOverridesFile(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	envFile := filepath.Join(t.TempDir(), "crossfs.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CROSSFS_WORKERS=4\n"), 0o644))

	t.Setenv(KeyWorkers, "8")

	cfg, err := c.Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
}

// TestLoad_Success_MissingFileSkipped tests that nonexistent environment
// files are skipped without error.
func TestLoad_Success_MissingFileSkipped(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	cfg, err := c.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, defaultWorkers, cfg.Workers)
}

// TestLoad_Fail_BadLogLevel tests rejection of unknown log levels.
func TestLoad_Fail_BadLogLevel(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	t.Setenv(KeyLogLevel, "loud")

	_, err := c.Load()

	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidValue)
}

// TestLoad_Fail_BadCopyBuffer tests rejection of unparseable buffer sizes.
func TestLoad_Fail_BadCopyBuffer(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	t.Setenv(KeyCopyBuffer, "not-a-size")

	_, err := c.Load()

	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidValue)
}

// TestLoad_Fail_BadWorkers tests rejection of non-positive worker counts.
func TestLoad_Fail_BadWorkers(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	t.Setenv(KeyWorkers, "0")

	_, err := c.Load()

	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidValue)
}

// TestLoad_Fail_BadShowHidden tests rejection of unparseable booleans.
func TestLoad_Fail_BadShowHidden(t *testing.T) {
	c := NewHandler(&GodotenvProvider{})

	t.Setenv(KeyShowHidden, "maybe")

	_, err := c.Load()

	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidValue)
}
