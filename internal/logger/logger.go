// Package logger provides the structured, leveled logger used by the
// yadisk-client CLI. It wraps log/slog and satisfies the yadisk.Logger
// interface so the same instance can be handed to the SDK.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// SlogLogger wraps a slog.Logger with the method set of yadisk.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates a logger writing text records to stderr at level.
func NewSlogLogger(level slog.Level) *SlogLogger {
	return NewSlogLoggerWithWriter(os.Stderr, level)
}

// NewSlogLoggerWithWriter creates a logger writing text records to w.
func NewSlogLoggerWithWriter(w io.Writer, level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{logger: slog.New(handler)}
}

// ParseLevel maps a level name from the configuration file to a slog level.
// An empty name means Info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// With returns a child logger that adds args to every record.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) log(level slog.Level, msg string, args ...any) {
	l.logger.Log(context.Background(), level, msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *SlogLogger) Debugf(format string, args ...any) {
	l.log(slog.LevelDebug, sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log(slog.LevelInfo, sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log(slog.LevelWarn, sprintf(format, args...))
}

func (l *SlogLogger) Errorf(format string, args ...any) {
	l.log(slog.LevelError, sprintf(format, args...))
}

// sprintf formats only when there are arguments, so a lone '%' survives.
func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
