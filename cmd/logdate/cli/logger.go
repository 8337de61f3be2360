// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to output.
// Format "text" and "json" select the handler directly. "auto" (or
// empty) uses slog.TextHandler when output is a terminal and
// slog.JSONHandler when it is piped or redirected.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "archives", "directory", directory)
func NewCommandLogger(output io.Writer, format string, level slog.Leveler) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(output, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(output, options)), nil
	case "", "auto":
		if isTerminal(output) {
			return slog.New(slog.NewTextHandler(output, options)), nil
		}
		return slog.New(slog.NewJSONHandler(output, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text, json, or auto)", format)
	}
}

func isTerminal(output io.Writer) bool {
	file, ok := output.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(file.Fd()))
}
