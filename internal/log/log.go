// Copyright 2026 The Bugconf Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for bugconf using log/slog.
package log

import (
	"io"
	"log/slog"
)

// Level maps the --verbose repetition count to a slog level.
//
//   - 0:  INFO and above
//   - 1+: DEBUG and above
func Level(verbosity int) slog.Level {
	if verbosity > 0 {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New returns a logger writing to w at the level selected by verbosity.
// Two or more -v also annotate records with their source location.
//
// The logger is handed explicitly to the components that need it; bugconf
// does not install it as the slog default.
func New(w io.Writer, verbosity int) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     Level(verbosity),
		AddSource: verbosity > 1,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
