// =============================================================================
// Sales Order Splitter - Logging
// =============================================================================
//
// This module builds the structured logger shared by the commands and the
// converter. Levels: debug, info, warn, error. Formats: text, json.
//
// =============================================================================

package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to its slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
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

// New creates a logger writing to w. It does not replace the global logger.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
