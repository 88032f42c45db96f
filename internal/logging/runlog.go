// Run log file support for the playcheck CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunLog writes a per-invocation log file. Each run gets a unique ID so
// concurrent invocations never collide on a filename.
type RunLog struct {
	runID    string
	logger   *log.Logger
	file     *os.File
	filePath string
	verbose  bool
}

// SetupRunLog creates a run log in logDir. Returns nil if logging is
// disabled (noLog=true); all RunLog methods tolerate a nil receiver.
func SetupRunLog(logDir string, verbose, noLog bool) (*RunLog, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("playcheck_run_%s_%s.log", timestamp, runID[:8])
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	l := &RunLog{
		runID:    runID,
		logger:   log.New(file, "", log.LstdFlags),
		file:     file,
		filePath: filePath,
		verbose:  verbose,
	}

	l.Info("playcheck starting, run %s", runID)
	l.Info("Log file: %s", filePath)

	return l, nil
}

// RunID returns the unique identifier for this invocation.
func (l *RunLog) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Close closes the log file.
func (l *RunLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *RunLog) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Info logs an info-level message.
func (l *RunLog) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
func (l *RunLog) Debug(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}

// Warn logs a warning message.
func (l *RunLog) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Error logs an error message.
func (l *RunLog) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}

// Writer returns an io.Writer that writes to the log file.
func (l *RunLog) Writer() io.Writer {
	if l == nil || l.file == nil {
		return io.Discard
	}
	return l.file
}
