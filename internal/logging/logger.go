// Package logging configures the CLI logger.
//
// Logs go to the diagnostic stream (stderr by default) so stdout stays free for documents.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Config selects level, format and destination.
type Config struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds a logger from cfg.
func New(cfg Config) *log.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           parseLevel(cfg.Level),
	})
	if cfg.JSON {
		logger.SetFormatter(log.JSONFormatter)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}
	return logger
}

// Setup builds a logger from cfg and installs it as the default.
func Setup(cfg Config) *log.Logger {
	logger := New(cfg)
	log.SetDefault(logger)
	return logger
}

// parseLevel converts a string log level to log.Level.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
