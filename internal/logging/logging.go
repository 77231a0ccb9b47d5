// Package logging builds the application's slog logger from config.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rpggio/ideabox/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to stderr, and additionally to a rotating JSON
// file when cfg.File is set. Stdout is left alone because the stdio transport
// owns it. The returned closer flushes and closes the log file, if any.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, console io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var consoleHandler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		consoleHandler = slog.NewJSONHandler(console, opts)
	} else {
		consoleHandler = slog.NewTextHandler(console, opts)
	}

	if strings.TrimSpace(cfg.File) == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	h := &multi{hs: []slog.Handler{consoleHandler, slog.NewJSONHandler(file, opts)}}
	return slog.New(h), file, nil
}

// ParseLevel converts a config level name. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multi fans records out to every handler that accepts them.
type multi struct{ hs []slog.Handler }

func (m *multi) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multi) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *multi) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return &multi{hs: out}
}

func (m *multi) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return &multi{hs: out}
}
