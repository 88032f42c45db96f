// Package logging provides structured logging for playcheck, backed by
// log/slog. The CLI points the global logger at the run log file; library
// consumers get stderr unless they install their own.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
)

// Logger wraps slog.Logger so internal packages stay decoupled from the
// handler configuration.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing text records at the given level. A nil
// writer falls back to stderr.
func New(level slog.Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// Disabled returns a logger that discards everything.
func Disabled() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithPrefix groups subsequent attributes under prefix, used to tag
// records with the file being analyzed.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{Logger: l.WithGroup(prefix)}
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// Global returns the process-wide logger, defaulting to Info on stderr.
func Global() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = New(LevelInfo, os.Stderr)
	}
	return globalLogger
}

// SetGlobal replaces the process-wide logger.
func SetGlobal(logger *Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Init installs a global logger at the given level and destination.
func Init(level slog.Level, w io.Writer) {
	SetGlobal(New(level, w))
}
