// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New returns a logger that writes human-readable lines to console and JSON
// lines to structured. Debug records are emitted only when verbose is set.
func New(console, structured io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	charmLevel := charmlog.InfoLevel
	if verbose {
		level = slog.LevelDebug
		charmLevel = charmlog.DebugLevel
	}

	pretty := charmlog.NewWithOptions(console, charmlog.Options{
		Prefix:          "imageshare",
		ReportTimestamp: true,
		Level:           charmLevel,
	})

	return slog.New(slog.NewMultiHandler(
		pretty,
		slog.NewJSONHandler(structured, &slog.HandlerOptions{Level: level}),
	))
}

// Setup installs the default logger on stdout and stderr.
func Setup(verbose bool) *slog.Logger {
	logger := New(os.Stdout, os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}
