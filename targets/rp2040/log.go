//go:build rp2040 || rp2350

package main

import (
	"log/slog"
)

// newLogger returns a text logger on the board's console
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(logSink(), &slog.HandlerOptions{
		Level: level,
	}))
}
