// Package errors provides structured error types for playcheck operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindInputNotFound means the input file does not exist or is unreadable.
	KindInputNotFound ErrorKind = iota
	// KindProbeUnavailable means the probe tool could not be invoked at all.
	KindProbeUnavailable
	// KindProbeParse means probe output could not be parsed into the typed model.
	KindProbeParse
	// KindIntegrityTimeout means the decode-validation pass exceeded its deadline.
	KindIntegrityTimeout
	// KindIntegrityCheck means the decode-validation pass could not be run.
	KindIntegrityCheck
	// KindCommand represents external command execution errors.
	KindCommand
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no analyzable media files found.
	KindNoFilesFound
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInputNotFound:
		return "Input not found"
	case KindProbeUnavailable:
		return "Probe unavailable"
	case KindProbeParse:
		return "Probe parse error"
	case KindIntegrityTimeout:
		return "Integrity check timeout"
	case KindIntegrityCheck:
		return "Integrity check error"
	case KindCommand:
		return "Command error"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for playcheck operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewInputNotFoundError creates an error for a missing or unreadable input file.
func NewInputNotFoundError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindInputNotFound, Message: fmt.Sprintf("input file %s", path), Underlying: underlying}
}

// NewProbeUnavailableError creates an error for when the probe tool cannot be invoked.
func NewProbeUnavailableError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbeUnavailable, Message: message, Underlying: underlying}
}

// NewProbeParseError creates a new probe output parsing error.
func NewProbeParseError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbeParse, Message: message, Underlying: underlying}
}

// NewIntegrityTimeoutError creates an error for a decode-validation pass that
// exceeded its deadline. A timeout is never treated as a clean result.
func NewIntegrityTimeoutError(path string) *CoreError {
	return &CoreError{Kind: KindIntegrityTimeout, Message: fmt.Sprintf("decode validation of %s timed out", path)}
}

// NewIntegrityCheckError creates an error for a decode-validation pass that
// could not be run at all.
func NewIntegrityCheckError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIntegrityCheck, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message}
}

// NewNoFilesFoundError creates an error for when no media files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no analyzable media files found in %s", dir)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsProbeUnavailable checks if the error is a probe-unavailable error.
func IsProbeUnavailable(err error) bool {
	return IsKind(err, KindProbeUnavailable)
}

// IsIntegrityTimeout checks if the error is an integrity-check timeout.
func IsIntegrityTimeout(err error) bool {
	return IsKind(err, KindIntegrityTimeout)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
