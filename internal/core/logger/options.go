package logger

import (
	"fmt"
	"io"
	"log/slog"
)

// Format represents the output format for logs
type Format string

const (
	// FormatText outputs human-readable key=value lines
	FormatText Format = "text"
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = "json"
)

// ParseFormat converts a format name from flags or config
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %s", s)
	}
}

type config struct {
	level  slog.Level
	output io.Writer
	format Format
}

// Option configures a logger
type Option func(*config)

// WithLevel sets the minimum log level
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithFormat sets the output format
func WithFormat(format Format) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithDebug enables debug logging
func WithDebug() Option {
	return WithLevel(slog.LevelDebug)
}

// WithQuiet only shows warnings and errors
func WithQuiet() Option {
	return WithLevel(slog.LevelWarn)
}
