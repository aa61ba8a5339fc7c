package log

import (
	"io"
	"log/slog"
)

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger creates a text logger. It logs at slog.LevelWarn, or
// slog.LevelDebug when verbose is true.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)}))
}
