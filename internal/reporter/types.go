// Package reporter provides diagnostic output interfaces and implementations.
package reporter

// ToolSummary describes the external tools the analyzer located.
type ToolSummary struct {
	FFprobe string
	FFmpeg  string
}

// FileContext contains the current file index within a batch.
type FileContext struct {
	CurrentFile int
	TotalFiles  int
	Path        string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	Directory  string
	FileList   []string
}

// StreamLine describes one stream for display.
type StreamLine struct {
	Index    int
	Kind     string
	Codec    string
	Detail   string
	Language string
	CoverArt bool
}

// IssueLine is one rendered finding.
type IssueLine struct {
	Severity  string // "good", "warning", "critical"
	Category  string
	Message   string
	StreamRef string // "stream 2", empty for container-level findings
}

// Report is the display form of one file's diagnostic.
type Report struct {
	Path            string
	Container       string
	Size            string
	Duration        string
	Bitrate         string
	DynamicRange    string // "SDR", "HDR", "HDR + Dolby Vision"
	Streams         []StreamLine
	Issues          []IssueLine
	Recommendations []string
	CriticalCount   int
	WarningCount    int
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// FileResult contains per-file batch outcome.
type FileResult struct {
	Filename      string
	CriticalCount int
	WarningCount  int
	Failed        bool
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	TotalFiles    int
	HealthyCount  int
	WarningCount  int
	CriticalCount int
	FailedCount   int
	Results       []FileResult
}
