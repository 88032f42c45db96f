package rules

import (
	"strings"
	"testing"

	"github.com/five82/playcheck/internal/ffprobe"
)

func TestAudioCodecTable(t *testing.T) {
	tests := []struct {
		codec        string
		format       ffprobe.Format
		wantIssue    bool
		wantSeverity Severity
	}{
		{codec: "aac", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityGood},
		{codec: "ac3", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityGood},
		{codec: "eac3", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityGood},
		{codec: "mp3", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityGood},
		{codec: "truehd", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "dts", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "pcm_s16le", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "pcm_s24le", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "flac", format: mkvFormat(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "opus", format: mkvFormat(), wantIssue: false},
		{codec: "vorbis", format: ffprobe.Format{Names: []string{"ogg"}}, wantIssue: false},
		{codec: "opus", format: mp4Format(), wantIssue: true, wantSeverity: SeverityWarning},
		{codec: "unknowncodec", format: mkvFormat(), wantIssue: false},
	}

	for _, tt := range tests {
		t.Run(tt.codec+"_"+tt.format.Names[0], func(t *testing.T) {
			issues := EvaluateAudio(tt.format, []ffprobe.Stream{audioStream(1, tt.codec)})
			if tt.wantIssue {
				if len(issues) != 1 {
					t.Fatalf("got %d issues, want 1", len(issues))
				}
				if issues[0].Severity != tt.wantSeverity {
					t.Errorf("severity = %v, want %v", issues[0].Severity, tt.wantSeverity)
				}
				if issues[0].Category != CategoryAudio {
					t.Errorf("category = %v, want audio", issues[0].Category)
				}
				if issues[0].StreamIndex == nil || *issues[0].StreamIndex != 1 {
					t.Errorf("stream index = %v, want 1", issues[0].StreamIndex)
				}
			} else if len(issues) != 0 {
				t.Fatalf("got %d issues, want 0: %+v", len(issues), issues)
			}
		})
	}
}

func TestDTSVariantDescription(t *testing.T) {
	s := ffprobe.Stream{
		Index: 2,
		Kind:  ffprobe.KindAudio,
		Codec: "dts",
		Audio: &ffprobe.AudioStream{Title: "DTS-HD MA 7.1"},
	}

	issues := EvaluateAudio(mkvFormat(), []ffprobe.Stream{s})
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1", len(issues))
	}
	if !strings.Contains(issues[0].Message, "DTS-HD MA 7.1") {
		t.Errorf("message %q does not distinguish the DTS variant", issues[0].Message)
	}
}

func TestAudioStreamsEvaluatedInOrder(t *testing.T) {
	streams := []ffprobe.Stream{
		audioStream(1, "truehd"),
		audioStream(2, "ac3"),
		audioStream(3, "dts"),
	}

	issues := EvaluateAudio(mkvFormat(), streams)
	if len(issues) != 3 {
		t.Fatalf("got %d issues, want 3", len(issues))
	}
	for i, wantIndex := range []int{1, 2, 3} {
		if issues[i].StreamIndex == nil || *issues[i].StreamIndex != wantIndex {
			t.Errorf("issue %d stream index = %v, want %d", i, issues[i].StreamIndex, wantIndex)
		}
	}
}
