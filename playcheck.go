// Package playcheck provides a Go library for media playback compatibility
// diagnostics.
//
// Playcheck probes a media file with ffprobe, evaluates its container,
// video, audio, and subtitle streams against direct-play compatibility
// rules, decodes the opening window with ffmpeg to catch corruption, and
// aggregates everything into a severity-tagged report.
//
// Basic usage:
//
//	checker, err := playcheck.New(
//	    playcheck.WithIntegrityWindow(30),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	diag, err := checker.Check(ctx, "movie.mkv", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d issues, %d critical\n", len(diag.Issues), diag.CriticalCount)
package playcheck

import (
	"context"

	"github.com/five82/playcheck/internal/config"
	"github.com/five82/playcheck/internal/discovery"
	"github.com/five82/playcheck/internal/logging"
	"github.com/five82/playcheck/internal/processing"
	"github.com/five82/playcheck/internal/report"
	"github.com/five82/playcheck/internal/reporter"
	"github.com/five82/playcheck/internal/rules"
)

// Re-export the report model
type (
	// Diagnostic is the aggregated result of one file analysis.
	Diagnostic = report.Diagnostic
	// Issue is a single severity-tagged finding.
	Issue = rules.Issue
	// Severity classifies how strongly an issue affects playback.
	Severity = rules.Severity
	// Reporter receives diagnostic output events.
	Reporter = reporter.Reporter
)

const (
	SeverityGood     = rules.SeverityGood
	SeverityWarning  = rules.SeverityWarning
	SeverityCritical = rules.SeverityCritical
)

// Checker is the main entry point for compatibility diagnostics.
type Checker struct {
	config *config.Config
}

// BatchResult contains the result of a directory check.
type BatchResult struct {
	TotalFiles    int
	AnalyzedCount int
	ProblemCount  int
	FailedCount   int
	Diagnostics   []*Diagnostic
}

// Option configures the checker.
type Option func(*config.Config)

// New creates a new Checker with the given options.
func New(opts ...Option) (*Checker, error) {
	cfg := config.Default()

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Checker{config: cfg}, nil
}

// WithIntegrityWindow sets the decode-validation window in seconds.
func WithIntegrityWindow(secs int) Option {
	return func(c *config.Config) {
		c.IntegrityWindowSecs = secs
	}
}

// WithFrameSampleCount bounds the GOP estimation sample per video stream.
func WithFrameSampleCount(n int) Option {
	return func(c *config.Config) {
		c.FrameSampleCount = n
	}
}

// WithProbeTimeout bounds each probe invocation, in seconds.
func WithProbeTimeout(secs int) Option {
	return func(c *config.Config) {
		c.ProbeTimeoutSecs = secs
	}
}

// WithIntegrityTimeout bounds the decode-validation invocation, in seconds.
func WithIntegrityTimeout(secs int) Option {
	return func(c *config.Config) {
		c.IntegrityTimeoutSecs = secs
	}
}

// WithWorkers sets how many files are analyzed concurrently in batch mode.
func WithWorkers(n int) Option {
	return func(c *config.Config) {
		c.Workers = n
	}
}

// WithoutIntegrityCheck disables the decode-validation pass.
func WithoutIntegrityCheck() Option {
	return func(c *config.Config) {
		c.SkipIntegrity = true
	}
}

// Check analyzes a single media file. The reporter may be nil; the
// diagnostic is returned either way. Structural failures (probe
// unreachable, decode validation timeout, cancellation) return an error
// and no diagnostic; content-level findings are issues inside the report.
func (c *Checker) Check(ctx context.Context, path string, rep Reporter) (*Diagnostic, error) {
	return processing.AnalyzeFile(ctx, c.config, path, rep, logging.Global())
}

// CheckDirectory analyzes every media file in a directory. Per-file
// analysis failures are counted, not fatal.
func (c *Checker) CheckDirectory(ctx context.Context, dir string, rep Reporter) (*BatchResult, error) {
	files, err := discovery.FindMediaFiles(dir)
	if err != nil {
		return nil, err
	}

	outcomes, err := processing.AnalyzeFiles(ctx, c.config, dir, files, rep, logging.Global())
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{TotalFiles: len(files)}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			batch.FailedCount++
			continue
		}
		batch.AnalyzedCount++
		batch.Diagnostics = append(batch.Diagnostics, outcome.Diagnostic)
		if outcome.Diagnostic.HasProblems() {
			batch.ProblemCount++
		}
	}
	return batch, nil
}

// FindMedia finds media files in a directory.
func FindMedia(dir string) ([]string, error) {
	return discovery.FindMediaFiles(dir)
}
