// Package logging configures the process-wide slog logger.
//
// Call sites use log/slog directly. The default handler is backed by
// charmbracelet/log and writes to stderr, since stdout carries the MCP
// stdio transport.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line
const Prefix = "prompts-mcp"

// New creates a slog logger writing to w at the given level name
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          Prefix,
		Level:           lvl,
	})

	return slog.New(handler), nil
}

// Setup creates a logger and installs it as the slog default
func Setup(w io.Writer, level string) error {
	logger, err := New(w, level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
