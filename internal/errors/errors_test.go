package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{NewInputNotFoundError("/tmp/x.mkv", os.ErrNotExist), KindInputNotFound},
		{NewProbeUnavailableError("ffprobe missing", nil), KindProbeUnavailable},
		{NewProbeParseError("bad json", nil), KindProbeParse},
		{NewIntegrityTimeoutError("/tmp/x.mkv"), KindIntegrityTimeout},
		{NewIntegrityCheckError("cannot run", nil), KindIntegrityCheck},
		{NewConfigError("bad value"), KindConfig},
		{NewNoFilesFoundError("/media"), KindNoFilesFound},
		{NewCancelledError(), KindCancelled},
	}

	for _, tt := range tests {
		if !IsKind(tt.err, tt.kind) {
			t.Errorf("IsKind(%v, %v) = false", tt.err, tt.kind)
		}
	}
}

func TestKindMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewIntegrityTimeoutError("x.mkv"))
	if !IsIntegrityTimeout(wrapped) {
		t.Error("wrapped timeout not recognized")
	}
	if IsCancelled(wrapped) {
		t.Error("timeout matched as cancellation")
	}
}

func TestUnwrapReachesUnderlying(t *testing.T) {
	err := NewInputNotFoundError("/tmp/x.mkv", os.ErrNotExist)
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("underlying os.ErrNotExist not reachable")
	}
}

func TestCoreErrorIs(t *testing.T) {
	a := NewCancelledError()
	b := NewCancelledError()
	if !errors.Is(a, b) {
		t.Error("two cancelled errors do not match")
	}
	if errors.Is(a, NewConfigError("x")) {
		t.Error("cancelled matches config error")
	}
}

func TestCommandFailedError(t *testing.T) {
	err := NewCommandFailedError("ffmpeg", 69, "some stderr")
	if !IsKind(err, KindCommand) {
		t.Error("not a command error")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("CommandError not reachable via As")
	}
	if cmdErr.ExitCode != 69 {
		t.Errorf("exit code = %d, want 69", cmdErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "exit code 69") {
		t.Errorf("message %q missing exit code", err.Error())
	}
}

func TestWrapExecErrorFallsBackToStart(t *testing.T) {
	err := WrapExecError("ffprobe", os.ErrPermission, "")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("CommandError not reachable via As")
	}
	if cmdErr.Kind != CommandStart {
		t.Errorf("kind = %v, want start", cmdErr.Kind)
	}
}
