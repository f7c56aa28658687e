// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide slog logger from LogConfig.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/procurement-parser/pkg/types"
)

// ParseLevel maps debug, info, warn and error to slog levels. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New builds a logger writing to w in the configured format (json or text).
func New(cfg types.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init builds a logger with New and installs it as the slog default.
func Init(cfg types.LogConfig, w io.Writer) *slog.Logger {
	l := New(cfg, w)
	slog.SetDefault(l)
	return l
}
