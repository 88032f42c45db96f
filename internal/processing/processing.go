// Package processing orchestrates diagnostics over one or more files,
// translating pipeline output into reporter events.
package processing

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/five82/playcheck/internal/analysis"
	"github.com/five82/playcheck/internal/config"
	"github.com/five82/playcheck/internal/discovery"
	"github.com/five82/playcheck/internal/errors"
	"github.com/five82/playcheck/internal/ffmpeg"
	"github.com/five82/playcheck/internal/ffprobe"
	"github.com/five82/playcheck/internal/logging"
	"github.com/five82/playcheck/internal/report"
	"github.com/five82/playcheck/internal/reporter"
	"github.com/five82/playcheck/internal/rules"
	"github.com/five82/playcheck/internal/util"
	"github.com/five82/playcheck/internal/worker"
)

// FileOutcome is the result of analyzing a single file.
type FileOutcome struct {
	Path       string
	Diagnostic *report.Diagnostic
	Err        error
}

// CheckTools verifies the external tools are on PATH and reports where they
// were found. ffprobe is mandatory; ffmpeg is only needed for the decode
// validation pass.
func CheckTools(cfg *config.Config, rep reporter.Reporter) error {
	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return errors.NewProbeUnavailableError("ffprobe not found in PATH", err)
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		if !cfg.SkipIntegrity {
			return errors.NewProbeUnavailableError("ffmpeg not found in PATH", err)
		}
		ffmpegPath = "(not found, decode validation disabled)"
	}

	rep.Tools(reporter.ToolSummary{
		FFprobe: ffprobePath,
		FFmpeg:  ffmpegPath,
	})
	return nil
}

// newPipeline wires a pipeline from the configuration.
func newPipeline(cfg *config.Config, log *logging.Logger) *analysis.Pipeline {
	return &analysis.Pipeline{
		Prober:   &ffprobe.ExecProber{Binary: "ffprobe", Timeout: cfg.ProbeTimeout()},
		Decoder:  &ffmpeg.ExecDecoder{Binary: "ffmpeg", Timeout: cfg.IntegrityTimeout()},
		Sidecars: &discovery.SidecarLister{},
		Options: analysis.Options{
			IntegrityWindowSecs: cfg.IntegrityWindowSecs,
			FrameSampleCount:    cfg.FrameSampleCount,
			SkipIntegrity:       cfg.SkipIntegrity,
		},
		Log: log,
	}
}

// AnalyzeFile runs the diagnostic pipeline for one file and emits the
// report.
func AnalyzeFile(ctx context.Context, cfg *config.Config, path string, rep reporter.Reporter, log *logging.Logger) (*report.Diagnostic, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Global()
	}

	pipeline := newPipeline(cfg, log)
	diag, err := pipeline.Analyze(ctx, path)
	if err != nil {
		rep.Error(analysisError(path, err))
		return nil, err
	}

	emitNotes(rep, diag)
	rep.Diagnostic(BuildReport(diag))
	log.Info("analysis complete",
		"path", path,
		"issues", len(diag.Issues),
		"critical", diag.CriticalCount)
	return diag, nil
}

// AnalyzeFiles runs the diagnostic pipeline over a batch. Files are
// analyzed concurrently up to cfg.Workers; reports are emitted in input
// order once all analyses have joined. A per-file failure is captured in
// its outcome and does not stop the batch.
func AnalyzeFiles(ctx context.Context, cfg *config.Config, dir string, files []string, rep reporter.Reporter, log *logging.Logger) ([]FileOutcome, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if log == nil {
		log = logging.Global()
	}

	fileNames := make([]string, len(files))
	for i, f := range files {
		fileNames[i] = filepath.Base(f)
	}
	rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles: len(files),
		Directory:  dir,
		FileList:   fileNames,
	})

	outcomes := make([]FileOutcome, len(files))
	sem := worker.NewSemaphore(cfg.Workers)
	var wg sync.WaitGroup

	for i, path := range files {
		if err := sem.Acquire(ctx); err != nil {
			outcomes[i] = FileOutcome{Path: path, Err: errors.NewCancelledError()}
			continue
		}

		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			defer sem.Release()

			rep.FileStarted(reporter.FileContext{
				CurrentFile: idx + 1,
				TotalFiles:  len(files),
				Path:        fileNames[idx],
			})

			pipeline := newPipeline(cfg, log.WithPrefix(fileNames[idx]))
			diag, err := pipeline.Analyze(ctx, p)
			outcomes[idx] = FileOutcome{Path: p, Diagnostic: diag, Err: err}
		}(i, path)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, errors.NewCancelledError()
	}

	results := make([]reporter.FileResult, 0, len(outcomes))
	summary := reporter.BatchSummary{TotalFiles: len(files)}
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			log.Error("analysis failed", "path", outcome.Path, "error", outcome.Err)
			rep.Error(analysisError(outcome.Path, outcome.Err))
			summary.FailedCount++
			results = append(results, reporter.FileResult{
				Filename: fileNames[i],
				Failed:   true,
			})
			continue
		}

		emitNotes(rep, outcome.Diagnostic)
		rep.Diagnostic(BuildReport(outcome.Diagnostic))
		criticals, warnings := issueCounts(outcome.Diagnostic)
		switch {
		case criticals > 0:
			summary.CriticalCount++
		case warnings > 0:
			summary.WarningCount++
		default:
			summary.HealthyCount++
		}
		results = append(results, reporter.FileResult{
			Filename:      fileNames[i],
			CriticalCount: criticals,
			WarningCount:  warnings,
		})
	}
	summary.Results = results
	rep.BatchComplete(summary)

	return outcomes, nil
}

// BuildReport converts a diagnostic into its display form.
func BuildReport(diag *report.Diagnostic) reporter.Report {
	criticals, warnings := issueCounts(diag)

	rep := reporter.Report{
		Path:            diag.Summary.Path,
		Container:       diag.Summary.Container,
		Size:            util.FormatBytes(diag.Summary.Size),
		Duration:        util.FormatDuration(diag.Summary.Duration),
		DynamicRange:    dynamicRange(diag),
		Recommendations: diag.Recommendations,
		CriticalCount:   criticals,
		WarningCount:    warnings,
	}
	if diag.Summary.BitRate != nil {
		rep.Bitrate = util.FormatBitrate(*diag.Summary.BitRate)
	}

	for _, s := range diag.Streams {
		rep.Streams = append(rep.Streams, reporter.StreamLine{
			Index:    s.Index,
			Kind:     s.Kind,
			Codec:    s.Codec,
			Detail:   s.Detail,
			Language: s.Language,
			CoverArt: s.CoverArt,
		})
	}

	for _, issue := range diag.Issues {
		line := reporter.IssueLine{
			Severity: issue.Severity.String(),
			Category: issue.Category.String(),
			Message:  issue.Message,
		}
		if issue.StreamIndex != nil {
			line.StreamRef = fmt.Sprintf("stream %d", *issue.StreamIndex)
		}
		rep.Issues = append(rep.Issues, line)
	}

	return rep
}

// emitNotes surfaces analysis degradations ahead of the diagnostic itself.
func emitNotes(rep reporter.Reporter, diag *report.Diagnostic) {
	for _, note := range diag.Notes {
		rep.Warning(note)
	}
}

func issueCounts(diag *report.Diagnostic) (criticals, warnings int) {
	for _, issue := range diag.Issues {
		switch issue.Severity {
		case rules.SeverityCritical:
			criticals++
		case rules.SeverityWarning:
			warnings++
		}
	}
	return criticals, warnings
}

func dynamicRange(diag *report.Diagnostic) string {
	switch {
	case diag.HasDolbyVision && diag.IsHDR:
		return "HDR + Dolby Vision"
	case diag.HasDolbyVision:
		return "Dolby Vision"
	case diag.IsHDR:
		return "HDR"
	default:
		return "SDR"
	}
}

func analysisError(path string, err error) reporter.ReporterError {
	repErr := reporter.ReporterError{
		Title:   "Analysis Error",
		Message: err.Error(),
		Context: fmt.Sprintf("File: %s", path),
	}
	switch {
	case errors.IsProbeUnavailable(err):
		repErr.Suggestion = "Check that ffprobe is installed and the file is a valid media format"
	case errors.IsIntegrityTimeout(err):
		repErr.Suggestion = "Increase integrity_timeout_secs or shorten the validation window"
	case errors.IsKind(err, errors.KindInputNotFound):
		repErr.Suggestion = "Check the file path"
	}
	return repErr
}
