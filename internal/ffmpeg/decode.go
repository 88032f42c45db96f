// Package ffmpeg invokes the decode-validation collaborator. It decodes a
// bounded window of the input to null output and captures decoder error
// lines from stderr.
package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/five82/playcheck/internal/errors"
	"github.com/five82/playcheck/internal/integrity"
)

// DefaultTimeout bounds a decode-validation invocation. Corrupt files can
// hang the decoder, so the pass always carries its own deadline distinct
// from any caller deadline.
const DefaultTimeout = 2 * time.Minute

// DecodeValidator describes the decode-validation collaborator.
type DecodeValidator interface {
	// ValidateDecode decodes up to windowSecs seconds of the file and
	// returns the exit status and captured decoder error lines.
	ValidateDecode(ctx context.Context, path string, windowSecs int) (integrity.DecodeResult, error)
}

// ExecDecoder implements DecodeValidator by running the ffmpeg binary.
type ExecDecoder struct {
	// Binary is the decoder executable name or path. Defaults to "ffmpeg".
	Binary string
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewExecDecoder creates an ExecDecoder with default binary and timeout.
func NewExecDecoder() *ExecDecoder {
	return &ExecDecoder{Binary: "ffmpeg", Timeout: DefaultTimeout}
}

func (d *ExecDecoder) binary() string {
	if d.Binary != "" {
		return d.Binary
	}
	return "ffmpeg"
}

func (d *ExecDecoder) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return DefaultTimeout
}

// ValidateDecode runs a null-output decode of the first windowSecs seconds.
// A deadline hit surfaces as an integrity-timeout error, never as success.
func (d *ExecDecoder) ValidateDecode(ctx context.Context, path string, windowSecs int) (integrity.DecodeResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, d.timeout())
	defer cancel()

	cmd := exec.CommandContext(runCtx, d.binary(),
		"-v", "error",
		"-i", path,
		"-t", fmt.Sprintf("%d", windowSecs),
		"-f", "null",
		"-",
	)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return integrity.DecodeResult{}, errors.NewIntegrityCheckError("failed to get stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return integrity.DecodeResult{}, errors.NewIntegrityCheckError("failed to start decoder", err)
	}

	// Decoder complaints arrive one per line on stderr.
	var errorLines []string
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			errorLines = append(errorLines, line)
		}
	}

	waitErr := cmd.Wait()

	if runCtx.Err() == context.DeadlineExceeded {
		return integrity.DecodeResult{}, errors.NewIntegrityTimeoutError(path)
	}
	if ctx.Err() != nil {
		return integrity.DecodeResult{}, errors.NewCancelledError()
	}

	result := integrity.DecodeResult{ErrorLines: errorLines}
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return integrity.DecodeResult{}, errors.NewIntegrityCheckError("decoder did not run", waitErr)
		}
	}

	return result, nil
}
