// Package logging configures the process-wide slog logger.
//
// All output goes to stderr: stdout carries the MCP stdio transport and must
// stay clean of anything that is not protocol traffic.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs a text handler on stderr filtered at the given level.
// Unknown level strings fall back to info.
func Init(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a level name (case-insensitive) to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// For returns a logger tagged with the given subsystem name.
func For(subsystem string) *slog.Logger {
	return slog.Default().With("subsystem", subsystem)
}
