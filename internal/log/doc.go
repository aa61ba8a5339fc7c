// Package log builds the slog loggers used by the docdeck command.
//
// Warnings and errors are always written; verbose mode adds the debug
// records that describe each rendering step (pages produced, slides
// clipped, fonts resolved).
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
