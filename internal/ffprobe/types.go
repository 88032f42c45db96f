// Package ffprobe parses media probe output into the typed model used by
// rule evaluation. It is the single boundary where loosely structured probe
// data is validated; no untyped value crosses it.
package ffprobe

import "strings"

// StreamKind identifies the variant of a Stream record.
type StreamKind int

const (
	// KindVideo is a video stream.
	KindVideo StreamKind = iota
	// KindAudio is an audio stream.
	KindAudio
	// KindSubtitle is a subtitle stream.
	KindSubtitle
)

// String returns the stream kind name.
func (k StreamKind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// Format holds container-level metadata. Immutable once constructed.
type Format struct {
	Filename string
	// Names is the ordered list of container format tags,
	// e.g. ["matroska", "webm"] for "matroska,webm".
	Names    []string
	Duration float64 // seconds, 0 when the container reports none
	BitRate  *int64  // bits/sec, nil when not reported
	Size     int64   // bytes
}

// HasName reports whether any container format tag matches name.
func (f Format) HasName(name string) bool {
	for _, n := range f.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// DisplayName returns the joined container format tags.
func (f Format) DisplayName() string {
	return strings.Join(f.Names, ",")
}

// SideData is a per-stream side-data entry from the probe. DVProfile is
// populated for Dolby Vision configuration records.
type SideData struct {
	Type      string
	DVProfile *int
}

// VideoStream holds the variant-specific fields of a video stream record.
type VideoStream struct {
	Width          int
	Height         int
	PixFmt         string
	AvgFrameRate   string // fraction, e.g. "24000/1001"
	BitRate        *int64
	Profile        string
	Level          *int
	ColorSpace     string
	ColorTransfer  string
	ColorPrimaries string
	ColorRange     string
	FieldOrder     string
	IsAttachedPic  bool
	SideData       []SideData
}

// AudioStream holds the variant-specific fields of an audio stream record.
type AudioStream struct {
	Language      string
	Title         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       *int64
}

// SubtitleStream holds the variant-specific fields of a subtitle stream record.
type SubtitleStream struct {
	Language string
	Title    string
	Forced   bool
	Default  bool
}

// Stream is a tagged union over video, audio, and subtitle records. Exactly
// one of Video, Audio, or Subtitle is non-nil, matching Kind. Streams are
// immutable after construction.
type Stream struct {
	Index    int
	Kind     StreamKind
	Codec    string
	Video    *VideoStream
	Audio    *AudioStream
	Subtitle *SubtitleStream
}

// Result is the fully parsed output of a single probe call. Streams preserve
// the probe's original order.
type Result struct {
	Format  Format
	Streams []Stream
}

// FrameSample describes one decoded frame from a bounded sampling window,
// used only for GOP estimation.
type FrameSample struct {
	PictType    string // "I", "P", or "B"
	StreamIndex int
	Ordinal     int // position within the sampled window
}
