package logger

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger defines the todo-db logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// SlogLogger wraps log/slog to implement the todo-db logging contract.
// Args are slog-style alternating key/value pairs.
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a SlogLogger that writes colored output to stderr.
// Colors are disabled when stderr is not a terminal.
func New(level slog.Level) *SlogLogger {
	h := tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return &SlogLogger{logger: slog.New(h)}
}

// NewWithHandler creates a SlogLogger on an arbitrary handler. Used by tests.
func NewWithHandler(h slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(h)}
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Default provides a global default logger instance.
var Default Logger = New(slog.LevelInfo)
