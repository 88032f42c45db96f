package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Tools(summary ToolSummary) {
	r.write(map[string]interface{}{
		"type":      "tools",
		"ffprobe":   summary.FFprobe,
		"ffmpeg":    summary.FFmpeg,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"directory":   info.Directory,
		"file_list":   info.FileList,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileStarted(fileCtx FileContext) {
	r.write(map[string]interface{}{
		"type":         "file_started",
		"current_file": fileCtx.CurrentFile,
		"total_files":  fileCtx.TotalFiles,
		"path":         fileCtx.Path,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) Diagnostic(rep Report) {
	streams := make([]map[string]interface{}, len(rep.Streams))
	for i, s := range rep.Streams {
		streams[i] = map[string]interface{}{
			"index":     s.Index,
			"kind":      s.Kind,
			"codec":     s.Codec,
			"detail":    s.Detail,
			"language":  s.Language,
			"cover_art": s.CoverArt,
		}
	}

	issues := make([]map[string]interface{}, len(rep.Issues))
	for i, issue := range rep.Issues {
		issues[i] = map[string]interface{}{
			"severity":   issue.Severity,
			"category":   issue.Category,
			"message":    issue.Message,
			"stream_ref": issue.StreamRef,
		}
	}

	r.write(map[string]interface{}{
		"type":            "diagnostic",
		"path":            rep.Path,
		"container":       rep.Container,
		"size":            rep.Size,
		"duration":        rep.Duration,
		"bitrate":         rep.Bitrate,
		"dynamic_range":   rep.DynamicRange,
		"streams":         streams,
		"issues":          issues,
		"recommendations": rep.Recommendations,
		"critical_count":  rep.CriticalCount,
		"warning_count":   rep.WarningCount,
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	results := make([]map[string]interface{}, len(summary.Results))
	for i, result := range summary.Results {
		results[i] = map[string]interface{}{
			"filename":       result.Filename,
			"critical_count": result.CriticalCount,
			"warning_count":  result.WarningCount,
			"failed":         result.Failed,
		}
	}

	r.write(map[string]interface{}{
		"type":           "batch_complete",
		"total_files":    summary.TotalFiles,
		"healthy_count":  summary.HealthyCount,
		"warning_count":  summary.WarningCount,
		"critical_count": summary.CriticalCount,
		"failed_count":   summary.FailedCount,
		"results":        results,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
