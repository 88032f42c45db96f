// Package analysis orchestrates one diagnostic pipeline execution per file:
// probe, classify, fan out the rule evaluators and integrity check, join,
// aggregate. Multiple files may be analyzed concurrently by independent
// Pipeline calls; the rule tables are read-only.
package analysis

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/five82/playcheck/internal/errors"
	"github.com/five82/playcheck/internal/ffmpeg"
	"github.com/five82/playcheck/internal/ffprobe"
	"github.com/five82/playcheck/internal/integrity"
	"github.com/five82/playcheck/internal/logging"
	"github.com/five82/playcheck/internal/report"
	"github.com/five82/playcheck/internal/rules"
)

// SidecarLister lists files in a directory that share the input's base name.
// It is the only file-system capability the pipeline consumes beyond the
// input itself.
type SidecarLister interface {
	ListSidecars(dir, baseName string) ([]string, error)
}

// Options tunes a pipeline execution.
type Options struct {
	// IntegrityWindowSecs is the decode-validation window length.
	IntegrityWindowSecs int
	// FrameSampleCount bounds the GOP estimation sample per video stream.
	FrameSampleCount int
	// SkipIntegrity disables the decode-validation pass.
	SkipIntegrity bool
}

// DefaultOptions returns the standard pipeline tuning.
func DefaultOptions() Options {
	return Options{
		IntegrityWindowSecs: integrity.DefaultWindowSecs,
		FrameSampleCount:    rules.GOPSampleWindow,
	}
}

// Pipeline wires the external collaborators into the diagnostic core.
type Pipeline struct {
	Prober   ffprobe.Prober
	Decoder  ffmpeg.DecodeValidator
	Sidecars SidecarLister
	Options  Options
	Log      *logging.Logger
}

// New creates a Pipeline with the default exec-based collaborators.
func New(sidecars SidecarLister, opts Options) *Pipeline {
	return &Pipeline{
		Prober:   ffprobe.NewExecProber(),
		Decoder:  ffmpeg.NewExecDecoder(),
		Sidecars: sidecars,
		Options:  opts,
		Log:      logging.Global(),
	}
}

// Analyze runs the full diagnostic pipeline for one file. Structural
// failures (probe unreachable, unparseable output, integrity timeout,
// cancellation) abort with an error and no report; content-level findings
// are returned as issues inside the report.
func (p *Pipeline) Analyze(ctx context.Context, path string) (*report.Diagnostic, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewInputNotFoundError(path, err)
	}

	probed, err := p.Prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}

	classified := rules.Classify(probed)
	p.Log.Debug("classified streams",
		"video", len(classified.Video),
		"audio", len(classified.Audio),
		"subtitle", len(classified.Subtitle))

	var (
		wg             sync.WaitGroup
		videoFindings  rules.VideoFindings
		audioIssues    []rules.Issue
		subtitleIssues []rules.Issue
		integIssues    []rules.Issue
		videoNotes     []string
		sidecarNote    string
		videoErr       error
		integErr       error
	)

	// The evaluators have no data dependency on each other; run them on
	// separate goroutines and join before aggregating.
	wg.Add(1)
	go func() {
		defer wg.Done()
		samples, notes, err := p.sampleFrames(ctx, path, classified)
		if err != nil {
			videoErr = err
			return
		}
		videoNotes = notes
		videoFindings = rules.EvaluateVideo(probed.Format, classified, samples)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		audioIssues = rules.EvaluateAudio(probed.Format, classified.Audio)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		var sidecars []string
		sidecars, sidecarNote = p.listSidecars(path)
		subtitleIssues = rules.EvaluateSubtitles(classified.Subtitle, sidecars)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p.Options.SkipIntegrity {
			return
		}
		result, err := p.Decoder.ValidateDecode(ctx, path, p.Options.IntegrityWindowSecs)
		if err != nil {
			integErr = err
			return
		}
		integIssues = integrity.Evaluate(result, p.Options.IntegrityWindowSecs)
	}()

	wg.Wait()

	// Cancellation discards all partial evaluator output.
	if ctx.Err() != nil {
		return nil, errors.NewCancelledError()
	}
	if videoErr != nil {
		return nil, videoErr
	}
	if integErr != nil {
		return nil, integErr
	}

	summary := report.Summary{
		Path:      path,
		Container: probed.Format.DisplayName(),
		Size:      probed.Format.Size,
		Duration:  probed.Format.Duration,
		BitRate:   probed.Format.BitRate,
	}

	notes := videoNotes
	if sidecarNote != "" {
		notes = append(notes, sidecarNote)
	}

	return report.Aggregate(summary, report.Inputs{
		Streams:   summarizeStreams(probed.Streams),
		Container: rules.EvaluateContainer(probed.Format),
		Video:     videoFindings,
		Audio:     audioIssues,
		Subtitle:  subtitleIssues,
		Integrity: integIssues,
		Notes:     notes,
	}), nil
}

// sampleFrames gathers the bounded GOP estimation sample for each playable
// video stream. Sampling failure on a single stream degrades to an empty
// sample for that stream; the GOP rule then stays silent and a note records
// the gap.
func (p *Pipeline) sampleFrames(ctx context.Context, path string, classified rules.Classified) (map[int][]ffprobe.FrameSample, []string, error) {
	playable := classified.PlayableVideo()
	if len(playable) == 0 || p.Options.FrameSampleCount <= 0 {
		return nil, nil, nil
	}

	var notes []string
	samples := make(map[int][]ffprobe.FrameSample, len(playable))
	for _, s := range playable {
		if ctx.Err() != nil {
			return nil, nil, errors.NewCancelledError()
		}
		fs, err := p.Prober.SampleFrames(ctx, path, s.Index, p.Options.FrameSampleCount)
		if err != nil {
			p.Log.Warn("frame sampling failed; skipping GOP estimate",
				"stream", s.Index, "error", err)
			notes = append(notes, fmt.Sprintf(
				"frame sampling failed for stream %d; GOP estimate skipped", s.Index))
			continue
		}
		samples[s.Index] = fs
	}
	return samples, notes, nil
}

func (p *Pipeline) listSidecars(path string) ([]string, string) {
	if p.Sidecars == nil {
		return nil, ""
	}
	names, err := p.Sidecars.ListSidecars(dirOf(path), baseNameOf(path))
	if err != nil {
		p.Log.Warn("sidecar listing failed", "error", err)
		return nil, "sidecar subtitle discovery failed; external subtitles not checked"
	}
	return names, ""
}
