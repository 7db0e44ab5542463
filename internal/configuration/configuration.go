// Package configuration loads the application settings from optional
// environment files and the process environment, the latter taking
// precedence.
package configuration

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// KeyRoot sets the path browsing starts at; empty means the virtual
	// root above all filesystem roots.
	KeyRoot = "CROSSFS_ROOT"

	// KeyLogLevel sets the minimum log level (debug, info, warn, error).
	KeyLogLevel = "CROSSFS_LOG_LEVEL"

	// KeyShowHidden includes dotfiles in listings when set.
	KeyShowHidden = "CROSSFS_SHOW_HIDDEN"

	// KeyCopyBuffer sets the transfer buffer size for verified copies,
	// in humanized notation ("256KiB", "1MB").
	KeyCopyBuffer = "CROSSFS_COPY_BUFFER"

	// KeyWorkers sets the maximum concurrent workers for queue
	// processing.
	KeyWorkers = "CROSSFS_WORKERS"
)

const (
	defaultCopyBufferSize = 256 << 10
	defaultWorkers        = 1
)

type envFileProvider interface {
	Read(filenames ...string) (map[string]string, error)
}

// Config is the principal structure holding the application configuration.
type Config struct {
	// Root is the path browsing starts at.
	Root string

	// LogLevel is the minimum level for emitted log records.
	LogLevel slog.Level

	// ShowHidden includes dotfiles in listings.
	ShowHidden bool

	// CopyBufferSize is the transfer buffer size for verified copies.
	CopyBufferSize uint64

	// Workers is the maximum concurrent workers for queue processing.
	Workers int
}

// Handler loads [Config] values from environment files and the process
// environment.
type Handler struct {
	EnvOps envFileProvider
}

// NewHandler returns a [Handler] reading environment files with the given
// provider.
func NewHandler(envOps envFileProvider) *Handler {
	return &Handler{
		EnvOps: envOps,
	}
}

// Load reads the given environment files and overlays the process
// environment, returning the effective [Config]. Missing files are skipped,
// unset keys keep their defaults.
func (c *Handler) Load(filenames ...string) (*Config, error) {
	cfg := &Config{
		LogLevel:       slog.LevelInfo,
		CopyBufferSize: defaultCopyBufferSize,
		Workers:        defaultWorkers,
	}

	values := map[string]string{}

	var existing []string
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}

	if len(existing) > 0 {
		fileValues, err := c.EnvOps.Read(existing...)
		if err != nil {
			return nil, fmt.Errorf("(config) failed to read environment files: %w", err)
		}
		maps.Copy(values, fileValues)
	}

	for _, key := range []string{KeyRoot, KeyLogLevel, KeyShowHidden, KeyCopyBuffer, KeyWorkers} {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}

	if err := cfg.apply(values); err != nil {
		return nil, fmt.Errorf("(config) %w", err)
	}

	return cfg, nil
}

func (cfg *Config) apply(values map[string]string) error {
	if value, ok := values[KeyRoot]; ok {
		cfg.Root = value
	}

	if value, ok := values[KeyLogLevel]; ok {
		level, err := parseLogLevel(value)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	if value, ok := values[KeyShowHidden]; ok {
		show, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyShowHidden, value)
		}
		cfg.ShowHidden = show
	}

	if value, ok := values[KeyCopyBuffer]; ok {
		size, err := humanize.ParseBytes(value)
		if err != nil || size == 0 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyCopyBuffer, value)
		}
		cfg.CopyBufferSize = size
	}

	if value, ok := values[KeyWorkers]; ok {
		workers, err := strconv.Atoi(value)
		if err != nil || workers < 1 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyWorkers, value)
		}
		cfg.Workers = workers
	}

	return nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, KeyLogLevel, value)
	}
}
