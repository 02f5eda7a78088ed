package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/core/config"
	"github.com/aki/mknote/internal/core/logger"
)

// Global flags for logging configuration
var (
	flagLogLevel  string
	flagLogFormat string
)

// RegisterLoggerFlags registers global logging flags
func RegisterLoggerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json); overrides the config file")
}

// CreateLogger creates a logger from the CLI flags, falling back to the
// log section of the configuration file.
func CreateLogger(cfg config.LogConfig) (logger.Logger, error) {
	levelName, formatName := cfg.Level, cfg.Format
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	if flagLogFormat != "" {
		formatName = flagLogFormat
	}

	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(os.Stderr),
	), nil
}
