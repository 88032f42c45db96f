package processing

import (
	"testing"

	"github.com/five82/playcheck/internal/report"
	"github.com/five82/playcheck/internal/reporter"
	"github.com/five82/playcheck/internal/rules"
)

func index(n int) *int { return &n }

func TestBuildReport(t *testing.T) {
	bitrate := int64(57_933_246)
	profile := 7
	diag := &report.Diagnostic{
		Summary: report.Summary{
			Path:      "/media/movie.mkv",
			Container: "matroska,webm",
			Size:      52_613_349_418,
			Duration:  7265.344,
			BitRate:   &bitrate,
		},
		Streams: []report.StreamSummary{
			{Index: 0, Kind: "video", Codec: "hevc", Detail: "3840x2160 yuv420p10le"},
			{Index: 1, Kind: "audio", Codec: "truehd", Detail: "7.1", Language: "eng"},
		},
		Issues: []rules.Issue{
			{Severity: rules.SeverityCritical, Category: rules.CategoryVideo, Rule: rules.RuleDolbyVision,
				Message: "Dolby Vision profile 7 metadata present", StreamIndex: index(0)},
			{Severity: rules.SeverityWarning, Category: rules.CategoryAudio, Rule: rules.RuleAudioCodec,
				Message: "TrueHD is lossless", StreamIndex: index(1)},
			{Severity: rules.SeverityGood, Category: rules.CategoryIntegrity, Rule: rules.RuleDecodeIntegrity,
				Message: "first 60 seconds decode cleanly"},
		},
		CriticalCount:  1,
		IsHDR:          true,
		HasDolbyVision: true,
		DVProfile:      &profile,
	}

	rep := BuildReport(diag)

	if rep.Path != "/media/movie.mkv" || rep.Container != "matroska,webm" {
		t.Errorf("summary fields = %q/%q", rep.Path, rep.Container)
	}
	if rep.Size != "49.00 GiB" {
		t.Errorf("size = %q", rep.Size)
	}
	if rep.Duration != "02:01:05" {
		t.Errorf("duration = %q", rep.Duration)
	}
	if rep.Bitrate != "57.9 Mb/s" {
		t.Errorf("bitrate = %q", rep.Bitrate)
	}
	if rep.DynamicRange != "HDR + Dolby Vision" {
		t.Errorf("dynamic range = %q", rep.DynamicRange)
	}
	if rep.CriticalCount != 1 || rep.WarningCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", rep.CriticalCount, rep.WarningCount)
	}

	if len(rep.Streams) != 2 {
		t.Fatalf("got %d stream lines, want 2", len(rep.Streams))
	}
	if rep.Streams[1].Language != "eng" {
		t.Errorf("stream 1 language = %q", rep.Streams[1].Language)
	}

	if len(rep.Issues) != 3 {
		t.Fatalf("got %d issue lines, want 3", len(rep.Issues))
	}
	if rep.Issues[0].Severity != "critical" || rep.Issues[0].StreamRef != "stream 0" {
		t.Errorf("issue 0 = %+v", rep.Issues[0])
	}
	if rep.Issues[2].StreamRef != "" {
		t.Errorf("file-level issue carries stream ref %q", rep.Issues[2].StreamRef)
	}
}

func TestDynamicRangeLabels(t *testing.T) {
	tests := []struct {
		name string
		hdr  bool
		dv   bool
		want string
	}{
		{name: "sdr", want: "SDR"},
		{name: "hdr only", hdr: true, want: "HDR"},
		{name: "dv only", dv: true, want: "Dolby Vision"},
		{name: "both", hdr: true, dv: true, want: "HDR + Dolby Vision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := &report.Diagnostic{IsHDR: tt.hdr, HasDolbyVision: tt.dv}
			if got := dynamicRange(diag); got != tt.want {
				t.Errorf("dynamicRange = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildReportOmitsUnknownBitrate(t *testing.T) {
	diag := &report.Diagnostic{Summary: report.Summary{Path: "x.mkv"}}
	rep := BuildReport(diag)
	if rep.Bitrate != "" {
		t.Errorf("bitrate = %q for unknown rate, want empty", rep.Bitrate)
	}
	if rep.DynamicRange != "SDR" {
		t.Errorf("dynamic range = %q, want SDR", rep.DynamicRange)
	}
}

// warningRecorder captures Warning events and discards everything else.
type warningRecorder struct {
	reporter.NullReporter
	warnings []string
}

func (r *warningRecorder) Warning(message string) {
	r.warnings = append(r.warnings, message)
}

func TestEmitNotesForwardsDegradations(t *testing.T) {
	rec := &warningRecorder{}
	diag := &report.Diagnostic{Notes: []string{
		"frame sampling failed for stream 0; GOP estimate skipped",
		"sidecar subtitle discovery failed; external subtitles not checked",
	}}

	emitNotes(rec, diag)
	if len(rec.warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(rec.warnings))
	}
	if rec.warnings[0] != diag.Notes[0] || rec.warnings[1] != diag.Notes[1] {
		t.Errorf("warnings = %v, want notes in order", rec.warnings)
	}

	emitNotes(rec, &report.Diagnostic{})
	if len(rec.warnings) != 2 {
		t.Error("note-free diagnostic emitted warnings")
	}
}
