package rules

import (
	"testing"

	"github.com/five82/playcheck/internal/ffprobe"
)

func subtitleWith(index int, codec string, forced, def bool) ffprobe.Stream {
	return ffprobe.Stream{
		Index:    index,
		Kind:     ffprobe.KindSubtitle,
		Codec:    codec,
		Subtitle: &ffprobe.SubtitleStream{Forced: forced, Default: def},
	}
}

func TestSubtitleFormats(t *testing.T) {
	tests := []struct {
		codec        string
		wantIssue    bool
		wantSeverity Severity
	}{
		{codec: "hdmv_pgs_subtitle", wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "dvd_subtitle", wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "dvb_subtitle", wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "xsub", wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "subrip", wantIssue: true, wantSeverity: SeverityGood},
		{codec: "ass", wantIssue: true, wantSeverity: SeverityGood},
		{codec: "mov_text", wantIssue: true, wantSeverity: SeverityGood},
		{codec: "webvtt", wantIssue: true, wantSeverity: SeverityGood},
		{codec: "unknown_subs", wantIssue: false},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			issues := EvaluateSubtitles([]ffprobe.Stream{subtitleWith(3, tt.codec, false, false)}, nil)
			if tt.wantIssue {
				if len(issues) != 1 {
					t.Fatalf("got %d issues, want 1", len(issues))
				}
				if issues[0].Severity != tt.wantSeverity {
					t.Errorf("severity = %v, want %v", issues[0].Severity, tt.wantSeverity)
				}
			} else if len(issues) != 0 {
				t.Fatalf("got %d issues, want 0", len(issues))
			}
		})
	}
}

func TestForcedNotDefaultDisposition(t *testing.T) {
	tests := []struct {
		name      string
		forced    bool
		def       bool
		wantIssue bool
	}{
		{name: "forced without default", forced: true, def: false, wantIssue: true},
		{name: "forced and default", forced: true, def: true, wantIssue: false},
		{name: "neither flag", forced: false, def: false, wantIssue: false},
		{name: "default only", forced: false, def: true, wantIssue: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := EvaluateSubtitles([]ffprobe.Stream{subtitleWith(3, "subrip", tt.forced, tt.def)}, nil)
			_, found := findRule(issues, RuleSubtitleDisposition)
			if found != tt.wantIssue {
				t.Errorf("disposition issue present = %v, want %v", found, tt.wantIssue)
			}
		})
	}
}

func TestSidecarSubtitles(t *testing.T) {
	issues := EvaluateSubtitles(nil, []string{"Movie.en.srt", "Movie.srt"})
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	for _, issue := range issues {
		if issue.Rule != RuleSidecarSubtitle || issue.Severity != SeverityGood {
			t.Errorf("issue = %+v, want good sidecar finding", issue)
		}
		if issue.StreamIndex != nil {
			t.Error("sidecar finding carries a stream reference")
		}
	}
}

func TestNoSubtitlesNoIssues(t *testing.T) {
	if issues := EvaluateSubtitles(nil, nil); len(issues) != 0 {
		t.Fatalf("got %d issues for absent subtitles, want 0", len(issues))
	}
}
