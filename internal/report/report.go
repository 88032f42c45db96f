// Package report aggregates evaluator output into the final diagnostic
// report: issues in fixed category order, a critical count, and a
// deduplicated recommendation list.
package report

import (
	"github.com/five82/playcheck/internal/rules"
)

// Summary holds the container-level facts echoed at the top of a report.
type Summary struct {
	Path      string
	Container string
	Size      int64   // bytes
	Duration  float64 // seconds, 0 when unknown
	BitRate   *int64  // bits/sec, nil when unknown
}

// StreamSummary is a display-oriented description of one stream.
type StreamSummary struct {
	Index    int
	Kind     string // "video", "audio", "subtitle"
	Codec    string
	Detail   string // resolution, channel layout, or disposition
	Language string // ISO tag as probed, empty when untagged
	CoverArt bool
}

// Diagnostic is the aggregated result of one analysis invocation. It is
// never mutated after aggregation; re-running evaluation produces a new
// value.
type Diagnostic struct {
	Summary Summary

	// Streams describes every classified stream, in probe order.
	Streams []StreamSummary

	// Issues in evaluation order: container, video, audio, subtitle,
	// integrity.
	Issues []rules.Issue

	CriticalCount int

	// Recommendations is ordered and deduplicated, derived purely from the
	// issue list and the video findings.
	Recommendations []string

	// Flags from the video evaluator, threaded through as data.
	IsHDR          bool
	HasDolbyVision bool
	DVProfile      *int

	// Notes records non-fatal degradations during analysis, such as a
	// skipped GOP estimate after a sampling failure.
	Notes []string
}

// Inputs carries the per-category evaluator output into aggregation.
type Inputs struct {
	Streams   []StreamSummary
	Container []rules.Issue
	Video     rules.VideoFindings
	Audio     []rules.Issue
	Subtitle  []rules.Issue
	Integrity []rules.Issue
	Notes     []string
}

// Aggregate merges evaluator output into a Diagnostic. It is a pure
// function: the same inputs always produce the same report.
func Aggregate(summary Summary, in Inputs) *Diagnostic {
	issues := make([]rules.Issue, 0,
		len(in.Container)+len(in.Video.Issues)+len(in.Audio)+len(in.Subtitle)+len(in.Integrity))
	issues = append(issues, in.Container...)
	issues = append(issues, in.Video.Issues...)
	issues = append(issues, in.Audio...)
	issues = append(issues, in.Subtitle...)
	issues = append(issues, in.Integrity...)

	criticals := 0
	for _, issue := range issues {
		if issue.Severity == rules.SeverityCritical {
			criticals++
		}
	}

	return &Diagnostic{
		Summary:         summary,
		Streams:         in.Streams,
		Issues:          issues,
		CriticalCount:   criticals,
		Recommendations: deriveRecommendations(issues),
		IsHDR:           in.Video.IsHDR,
		HasDolbyVision:  in.Video.HasDolbyVision,
		DVProfile:       in.Video.DVProfile,
		Notes:           in.Notes,
	}
}

// HasProblems reports whether the file carries any Warning or Critical issue.
func (d *Diagnostic) HasProblems() bool {
	for _, issue := range d.Issues {
		if issue.Severity != rules.SeverityGood {
			return true
		}
	}
	return false
}

// recommendationFor maps a rule to its remediation string. Good issues never
// produce recommendations; only Warning and Critical findings do.
func recommendationFor(issue rules.Issue) string {
	if issue.Severity == rules.SeverityGood {
		return ""
	}
	switch issue.Rule {
	case rules.RuleDolbyVision:
		return "remove the Dolby Vision layer, keeping the HDR10 base"
	case rules.RuleContainerFormat:
		return "remux to a modern container (MKV or MP4)"
	case rules.RuleVideoCodec:
		return "transcode video to H.264 or HEVC"
	case rules.RuleHDRPixelFormat:
		return "re-encode to a standard 10-bit pixel format (yuv420p10le)"
	case rules.RuleInterlace:
		return "deinterlace during the next transcode"
	case rules.RuleVideoLevel:
		return "re-encode at a lower codec level"
	case rules.RuleGOPSize:
		return "re-encode with a shorter keyframe interval"
	case rules.RuleBFrameProfile:
		return "re-encode with a hardware-friendly profile"
	case rules.RuleAudioCodec:
		return "add or transcode to an AAC or AC-3 audio track"
	case rules.RuleSubtitleFormat:
		return "convert bitmap subtitles to SRT"
	case rules.RuleSubtitleDisposition:
		return "fix subtitle default/forced flags during a remux"
	case rules.RuleDecodeIntegrity:
		return "re-source the file; decode errors indicate corruption"
	default:
		return ""
	}
}

// deriveRecommendations walks the issues in report order and collects each
// rule's remediation once, preserving first-seen order.
func deriveRecommendations(issues []rules.Issue) []string {
	var recs []string
	seen := make(map[string]bool)
	for _, issue := range issues {
		rec := recommendationFor(issue)
		if rec == "" || seen[rec] {
			continue
		}
		seen[rec] = true
		recs = append(recs, rec)
	}
	return recs
}
