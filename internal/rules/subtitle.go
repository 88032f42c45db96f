package rules

import (
	"fmt"
	"strings"

	"github.com/five82/playcheck/internal/ffprobe"
)

// bitmapSubtitleCodecs are image-based formats that force clients to
// rasterize and scale overlays.
var bitmapSubtitleCodecs = map[string]bool{
	"hdmv_pgs_subtitle": true,
	"dvd_subtitle":      true,
	"dvb_subtitle":      true,
	"xsub":              true,
}

// textSubtitleCodecs render cheaply on every client.
var textSubtitleCodecs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"ass":      true,
	"ssa":      true,
	"mov_text": true,
	"webvtt":   true,
}

// EvaluateSubtitles checks embedded subtitle streams and reports any sidecar
// subtitle files supplied by the caller. Absence of sidecars is not an issue.
func EvaluateSubtitles(streams []ffprobe.Stream, sidecars []string) []Issue {
	var issues []Issue

	for _, s := range streams {
		c := strings.ToLower(s.Codec)
		ref := streamRef(s.Index)

		switch {
		case bitmapSubtitleCodecs[c]:
			issues = append(issues, warning(RuleSubtitleFormat, CategorySubtitle, ref,
				fmt.Sprintf("image-based subtitle format %q burdens playback performance and scaling", c)))
		case textSubtitleCodecs[c]:
			issues = append(issues, good(RuleSubtitleFormat, CategorySubtitle, ref,
				fmt.Sprintf("text-based subtitle format %q renders cleanly", c)))
		}

		if s.Subtitle != nil && s.Subtitle.Forced && !s.Subtitle.Default {
			issues = append(issues, warning(RuleSubtitleDisposition, CategorySubtitle, ref,
				"subtitle flagged forced but not default; it may not display automatically"))
		}
	}

	for _, name := range sidecars {
		issues = append(issues, good(RuleSidecarSubtitle, CategorySubtitle, nil,
			fmt.Sprintf("external subtitle file %q found alongside the input", name)))
	}

	return issues
}
