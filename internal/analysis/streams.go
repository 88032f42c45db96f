package analysis

import (
	"fmt"

	"github.com/five82/playcheck/internal/ffprobe"
	"github.com/five82/playcheck/internal/report"
	"github.com/five82/playcheck/internal/rules"
)

// summarizeStreams builds the display listing for the report, in probe
// order. Disposition and layout details are cosmetic; the evaluators work
// from the typed streams directly.
func summarizeStreams(streams []ffprobe.Stream) []report.StreamSummary {
	out := make([]report.StreamSummary, 0, len(streams))
	for _, s := range streams {
		summary := report.StreamSummary{
			Index: s.Index,
			Kind:  s.Kind.String(),
			Codec: s.Codec,
		}
		switch s.Kind {
		case ffprobe.KindVideo:
			if v := s.Video; v != nil {
				summary.Detail = fmt.Sprintf("%dx%d %s", v.Width, v.Height, v.PixFmt)
				summary.CoverArt = rules.IsCoverArt(s)
			}
		case ffprobe.KindAudio:
			if a := s.Audio; a != nil {
				summary.Detail = audioDetail(a)
				summary.Language = a.Language
			}
		case ffprobe.KindSubtitle:
			if sub := s.Subtitle; sub != nil {
				summary.Detail = subtitleDetail(sub)
				summary.Language = sub.Language
			}
		}
		out = append(out, summary)
	}
	return out
}

func audioDetail(a *ffprobe.AudioStream) string {
	if a.ChannelLayout != "" {
		return a.ChannelLayout
	}
	if a.Channels > 0 {
		return fmt.Sprintf("%dch", a.Channels)
	}
	return ""
}

func subtitleDetail(sub *ffprobe.SubtitleStream) string {
	switch {
	case sub.Forced && sub.Default:
		return "forced, default"
	case sub.Forced:
		return "forced"
	case sub.Default:
		return "default"
	default:
		return ""
	}
}
