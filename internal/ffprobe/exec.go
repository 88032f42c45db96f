package ffprobe

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/five82/playcheck/internal/errors"
)

// DefaultTimeout bounds a single probe invocation. Corrupt files can make
// the probe tool hang, so invocation always carries its own deadline.
const DefaultTimeout = 30 * time.Second

// Prober describes the probe collaborator consumed by the analysis pipeline.
type Prober interface {
	// Probe returns the typed probe result for a file.
	Probe(ctx context.Context, path string) (*Result, error)

	// SampleFrames returns up to maxFrames decoded-frame descriptors for the
	// given video stream, in decode order.
	SampleFrames(ctx context.Context, path string, streamIndex, maxFrames int) ([]FrameSample, error)
}

// ExecProber implements Prober by running the ffprobe binary.
type ExecProber struct {
	// Binary is the probe executable name or path. Defaults to "ffprobe".
	Binary string
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewExecProber creates an ExecProber with default binary and timeout.
func NewExecProber() *ExecProber {
	return &ExecProber{Binary: "ffprobe", Timeout: DefaultTimeout}
}

func (p *ExecProber) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "ffprobe"
}

func (p *ExecProber) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// Probe runs a single ffprobe JSON call against path and parses the result.
func (p *ExecProber) Probe(ctx context.Context, path string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary(),
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewProbeUnavailableError(
				fmt.Sprintf("probe of %s did not complete", path), ctx.Err())
		}
		return nil, errors.NewProbeUnavailableError(
			fmt.Sprintf("ffprobe failed for %s", path), err)
	}

	return Parse(out)
}

// SampleFrames runs ffprobe -show_frames over a bounded window of the given
// video stream and returns the frame samples used for GOP estimation.
func (p *ExecProber) SampleFrames(ctx context.Context, path string, streamIndex, maxFrames int) ([]FrameSample, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary(),
		"-v", "quiet",
		"-print_format", "json",
		"-select_streams", fmt.Sprintf("%d", streamIndex),
		"-show_frames",
		"-show_entries", "frame=media_type,stream_index,pict_type",
		"-read_intervals", fmt.Sprintf("%%+#%d", maxFrames),
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewProbeUnavailableError(
				fmt.Sprintf("frame sampling of %s did not complete", path), ctx.Err())
		}
		return nil, errors.NewProbeUnavailableError(
			fmt.Sprintf("frame sampling failed for %s", path), err)
	}

	return ParseFrames(out, maxFrames)
}
