package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	verbose  bool
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
	faint    *color.Color
}

// NewTerminalReporter creates a new terminal reporter. Color output is
// disabled when stdout is not a terminal.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) Tools(summary ToolSummary) {
	if !r.verbose {
		return
	}
	fmt.Println()
	_, _ = r.cyan.Println("TOOLS")
	r.printLabel(9, "ffprobe:", summary.FFprobe)
	r.printLabel(9, "ffmpeg:", summary.FFmpeg)
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Checking %d files in %s\n", info.TotalFiles, r.bold.Sprint(info.Directory))
	if r.verbose {
		for i, name := range info.FileList {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(
		info.TotalFiles,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Checking [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileStarted(fileCtx FileContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress == nil {
		return
	}
	_ = r.progress.Set(fileCtx.CurrentFile - 1)
	r.progress.Describe(fmt.Sprintf("%d/%d %s",
		fileCtx.CurrentFile, fileCtx.TotalFiles, fileCtx.Path))
}

func (r *TerminalReporter) Diagnostic(rep Report) {
	fmt.Println()
	_, _ = r.cyan.Println("FILE")
	r.printLabel(11, "Path:", rep.Path)
	r.printLabel(11, "Container:", rep.Container)
	r.printLabel(11, "Size:", rep.Size)
	r.printLabel(11, "Duration:", rep.Duration)
	if rep.Bitrate != "" {
		r.printLabel(11, "Bitrate:", rep.Bitrate)
	}
	r.printLabel(11, "Dynamic:", rep.DynamicRange)

	if len(rep.Streams) > 0 {
		fmt.Println()
		_, _ = r.cyan.Println("STREAMS")
		fmt.Println(indent(r.streamTable(rep.Streams), "  "))
	}

	fmt.Println()
	_, _ = r.cyan.Println("FINDINGS")
	for _, issue := range rep.Issues {
		fmt.Printf("  %s %s\n", r.severityMark(issue.Severity), issueText(issue))
	}

	if len(rep.Recommendations) > 0 {
		fmt.Println()
		_, _ = r.cyan.Println("RECOMMENDATIONS")
		for _, rec := range rep.Recommendations {
			fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), rec)
		}
	}

	fmt.Println()
	switch {
	case rep.CriticalCount > 0:
		_, _ = r.red.Printf("%d critical compatibility problems\n", rep.CriticalCount)
	case rep.WarningCount > 0:
		_, _ = r.yellow.Printf("%d playback warnings\n", rep.WarningCount)
	default:
		fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"),
			r.bold.Sprint("No compatibility problems found"))
	}
}

func (r *TerminalReporter) streamTable(streams []StreamLine) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Type", "Codec", "Detail", "Language"})

	for _, s := range streams {
		kind := s.Kind
		if s.CoverArt {
			kind = "cover art"
		}
		tw.AppendRow(table.Row{s.Index, kind, s.Codec, s.Detail, humanLanguage(s.Language)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	return tw.Render()
}

func (r *TerminalReporter) severityMark(severity string) string {
	switch severity {
	case "critical":
		return r.red.Sprint("✗")
	case "warning":
		return r.yellow.Sprint("!")
	default:
		return r.green.Sprint("✓")
	}
}

func issueText(issue IssueLine) string {
	if issue.StreamRef != "" {
		return fmt.Sprintf("[%s, %s] %s", issue.Category, issue.StreamRef, issue.Message)
	}
	return fmt.Sprintf("[%s] %s", issue.Category, issue.Message)
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d files checked", summary.TotalFiles))
	fmt.Printf("  Healthy: %s, warnings: %s, critical: %s\n",
		r.green.Sprint(summary.HealthyCount),
		r.yellow.Sprint(summary.WarningCount),
		r.red.Sprint(summary.CriticalCount))
	if summary.FailedCount > 0 {
		fmt.Printf("  %s\n", r.red.Sprintf("%d files could not be analyzed", summary.FailedCount))
	}

	for _, result := range summary.Results {
		switch {
		case result.Failed:
			fmt.Printf("  - %s (%s)\n", result.Filename, r.red.Sprint("analysis failed"))
		case result.CriticalCount > 0:
			fmt.Printf("  - %s (%s)\n", result.Filename,
				r.red.Sprintf("%d critical", result.CriticalCount))
		case result.WarningCount > 0:
			fmt.Printf("  - %s (%s)\n", result.Filename,
				r.yellow.Sprintf("%d warnings", result.WarningCount))
		default:
			fmt.Printf("  - %s (%s)\n", result.Filename, r.green.Sprint("ok"))
		}
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s\n", r.faint.Sprint(message))
}

// humanLanguage resolves an ISO language tag from stream metadata to its
// English display name. Unknown or empty tags pass through unchanged.
func humanLanguage(tag string) string {
	if tag == "" || tag == "und" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	name := display.English.Tags().Name(parsed)
	if name == "" {
		return tag
	}
	return name
}

func indent(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
