// Package logging provides structured logging for schemaforge on top of
// log/slog, with per-component child loggers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with component scoping.
type Logger struct {
	logger *slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
	Output io.Writer
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// New creates a logger from config. A nil config uses defaults.
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{logger: l.logger.With("component", component)}
}

// With returns a child logger with additional fields.
func (l *Logger) With(fields ...any) *Logger {
	return &Logger{logger: l.logger.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...any) { l.logger.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...any)  { l.logger.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...any)  { l.logger.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...any) { l.logger.Error(msg, fields...) }
