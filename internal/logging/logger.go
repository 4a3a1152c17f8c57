package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// Dir, when set, additionally writes a per-session log file there.
	Dir string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr

	switch cfg.Format {
	case "console":
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: cfg.TimeFormat,
		}
	case "json":
		// JSON is the default zerolog format
		output = os.Stderr
	}

	if cfg.Dir != "" {
		if file, err := openSessionFile(cfg.Dir); err == nil {
			output = zerolog.MultiLevelWriter(output, file)
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// FileConfig controls the optional session log file and whether the
// console writer stays attached. The interactive shell runs with
// WriteToStderr off so log lines do not tear the terminal UI.
type FileConfig struct {
	Enabled       bool
	WriteToStderr bool
}

// NewWithFile creates a logger honoring fc and returns a cleanup that
// closes the session file. With both sinks disabled the logger writes
// nowhere. A file open failure is reported but still yields a usable
// logger on the remaining sinks.
func NewWithFile(cfg Config, fc FileConfig) (zerolog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if fc.WriteToStderr {
		switch cfg.Format {
		case "console":
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: cfg.TimeFormat,
			})
		default:
			writers = append(writers, os.Stderr)
		}
	}

	var fileErr error
	if fc.Enabled && cfg.Dir != "" {
		file, err := openSessionFile(cfg.Dir)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, file)
			cleanup = func() { _ = file.Close() }
		}
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return logger, cleanup, fileErr
}

// NewFromEnv creates a logger based on environment variables
// SKIFF_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// SKIFF_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("SKIFF_LOG_LEVEL"), os.Getenv("SKIFF_LOG_FORMAT"))
}

// NewFromConfigValues creates a logger from plain string settings, as they
// appear in the config file or on the command line.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)

	switch format {
	case "json", "console":
		cfg.Format = format
	}

	return New(cfg)
}

// ParseLevel maps a config-file level name to a zerolog level. Unknown
// names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func openSessionFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := SessionFilename(GenerateSessionID())
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
