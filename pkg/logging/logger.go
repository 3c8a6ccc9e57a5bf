package logging

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger defines the structured logging interface used across the SDK
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Option configures the logger returned by New
type Option func(*config)

type config struct {
	writer io.Writer
	level  zerolog.Level
}

// WithWriter sets the output writer (default os.Stderr)
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// WithLevel sets the minimum level that will be emitted (default info)
func WithLevel(level zerolog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// New creates a Logger that writes JSON lines via zerolog
func New(opts ...Option) Logger {
	cfg := &config{
		writer: os.Stderr,
		level:  zerolog.InfoLevel,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	zl := zerolog.New(cfg.writer).Level(cfg.level).With().Timestamp().Logger()
	return &zerologLogger{logger: zl}
}

// Noop returns a Logger that discards everything
func Noop() Logger {
	zl := zerolog.New(io.Discard).Level(zerolog.Disabled)
	return &zerologLogger{logger: zl}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.emit(ctx, l.logger.Error(), msg, fields)
}

// With returns a child logger that includes fields on every line
func (l *zerologLogger) With(fields map[string]interface{}) Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &zerologLogger{logger: zc.Logger()}
}

func (l *zerologLogger) emit(ctx context.Context, e *zerolog.Event, msg string, fields map[string]interface{}) {
	if e == nil {
		return
	}
	e = e.Ctx(ctx)
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
