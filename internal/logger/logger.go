package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

type implLogger struct {
	zl zerolog.Logger
}

// New creates a Logger writing human-readable lines to stdout.
func New(level string) Logger {
	return NewWithOutput(level, "text", os.Stdout)
}

// NewWithOutput creates a Logger for the given level and format ("text" or "json").
func NewWithOutput(level, format string, out io.Writer) Logger {
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime, NoColor: true}
	}
	zl := zerolog.New(out).Level(parseLevel(level)).With().Timestamp().Logger()
	return &implLogger{zl: zl}
}

// WithSession returns a context whose log lines carry the session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// SessionFrom returns the session id stored by WithSession, if any.
func SessionFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id := SessionFrom(ctx); id != "" {
		e = e.Str("session", id)
	}
	return e
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.event(ctx, l.zl.Debug()).Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.event(ctx, l.zl.Info()).Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.event(ctx, l.zl.Warn()).Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.event(ctx, l.zl.Error()).Msgf(msg, args...)
}

type nopLogger struct{}

// Nop returns a Logger that discards everything. Useful in tests.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...interface{}) {}
func (nopLogger) Info(context.Context, string, ...interface{})  {}
func (nopLogger) Warn(context.Context, string, ...interface{})  {}
func (nopLogger) Error(context.Context, string, ...interface{}) {}
