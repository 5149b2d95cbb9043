package petlookup

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds a text logger at the named level ("debug", "info", "warn", "error")
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "", "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
