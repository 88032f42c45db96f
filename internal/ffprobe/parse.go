package ffprobe

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/five82/playcheck/internal/errors"
)

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index          int               `json:"index"`
	CodecType      string            `json:"codec_type"`
	CodecName      string            `json:"codec_name"`
	Profile        string            `json:"profile"`
	Level          int               `json:"level"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	PixFmt         string            `json:"pix_fmt"`
	AvgFrameRate   string            `json:"avg_frame_rate"`
	BitRate        string            `json:"bit_rate"`
	ColorSpace     string            `json:"color_space"`
	ColorTransfer  string            `json:"color_transfer"`
	ColorPrimaries string            `json:"color_primaries"`
	ColorRange     string            `json:"color_range"`
	FieldOrder     string            `json:"field_order"`
	Channels       int               `json:"channels"`
	ChannelLayout  string            `json:"channel_layout"`
	SampleRate     string            `json:"sample_rate"`
	Disposition    map[string]int    `json:"disposition"`
	Tags           map[string]string `json:"tags"`
	SideDataList   []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string `json:"side_data_type"`
	DVProfile    *int   `json:"dv_profile"`
}

// Parse converts raw ffprobe JSON output into a Result. It is the only place
// where untyped probe data is validated into the typed model.
func Parse(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewProbeParseError("invalid probe output", err)
	}

	if len(raw.Streams) == 0 {
		return nil, errors.NewProbeParseError("probe output contains no streams", nil)
	}
	if raw.Format.FormatName == "" {
		return nil, errors.NewProbeParseError("probe output missing container format name", nil)
	}

	result := &Result{Format: convertFormat(&raw.Format)}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			result.Streams = append(result.Streams, convertVideo(s))
		case "audio":
			result.Streams = append(result.Streams, convertAudio(s))
		case "subtitle":
			result.Streams = append(result.Streams, convertSubtitle(s))
		}
	}

	return result, nil
}

func convertFormat(f *ffprobeFormat) Format {
	names := strings.Split(f.FormatName, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return Format{
		Filename: f.Filename,
		Names:    names,
		Duration: parseFloat(f.Duration),
		BitRate:  parseOptionalInt64(f.BitRate),
		Size:     parseInt64(f.Size),
	}
}

func convertVideo(s *ffprobeStream) Stream {
	v := &VideoStream{
		Width:          s.Width,
		Height:         s.Height,
		PixFmt:         s.PixFmt,
		AvgFrameRate:   s.AvgFrameRate,
		BitRate:        parseOptionalInt64(s.BitRate),
		Profile:        s.Profile,
		ColorSpace:     s.ColorSpace,
		ColorTransfer:  s.ColorTransfer,
		ColorPrimaries: s.ColorPrimaries,
		ColorRange:     s.ColorRange,
		FieldOrder:     s.FieldOrder,
		IsAttachedPic:  s.Disposition["attached_pic"] == 1,
	}

	// ffprobe reports level -99 or 0 when unknown.
	if s.Level > 0 {
		level := s.Level
		v.Level = &level
	}

	for _, sd := range s.SideDataList {
		v.SideData = append(v.SideData, SideData{
			Type:      sd.SideDataType,
			DVProfile: sd.DVProfile,
		})
	}

	return Stream{Index: s.Index, Kind: KindVideo, Codec: s.CodecName, Video: v}
}

func convertAudio(s *ffprobeStream) Stream {
	a := &AudioStream{
		Language:      s.Tags["language"],
		Title:         s.Tags["title"],
		Channels:      s.Channels,
		ChannelLayout: s.ChannelLayout,
		SampleRate:    parseInt(s.SampleRate),
		BitRate:       parseOptionalInt64(s.BitRate),
	}
	return Stream{Index: s.Index, Kind: KindAudio, Codec: s.CodecName, Audio: a}
}

func convertSubtitle(s *ffprobeStream) Stream {
	sub := &SubtitleStream{
		Language: s.Tags["language"],
		Title:    s.Tags["title"],
		Forced:   s.Disposition["forced"] == 1,
		Default:  s.Disposition["default"] == 1,
	}
	return Stream{Index: s.Index, Kind: KindSubtitle, Codec: s.CodecName, Subtitle: sub}
}

// ffprobeFrames represents the JSON output of a -show_frames call.
type ffprobeFrames struct {
	Frames []ffprobeFrame `json:"frames"`
}

type ffprobeFrame struct {
	MediaType   string `json:"media_type"`
	StreamIndex int    `json:"stream_index"`
	PictType    string `json:"pict_type"`
}

// ParseFrames converts raw -show_frames JSON output into an ordered list of
// FrameSamples, truncated at maxFrames.
func ParseFrames(data []byte, maxFrames int) ([]FrameSample, error) {
	var raw ffprobeFrames
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewProbeParseError("invalid frame sample output", err)
	}

	var samples []FrameSample
	for _, f := range raw.Frames {
		if f.MediaType != "" && f.MediaType != "video" {
			continue
		}
		if f.PictType == "" {
			continue
		}
		samples = append(samples, FrameSample{
			PictType:    f.PictType,
			StreamIndex: f.StreamIndex,
			Ordinal:     len(samples),
		})
		if maxFrames > 0 && len(samples) >= maxFrames {
			break
		}
	}
	return samples, nil
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

// parseOptionalInt64 keeps absent numerics distinguishable from zero.
func parseOptionalInt64(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// FrameRate returns the stream's frame rate as a float, or 0 when the
// fraction is absent or malformed.
func (v *VideoStream) FrameRate() float64 {
	num, den, ok := splitFraction(v.AvgFrameRate)
	if !ok || den == 0 {
		return 0
	}
	return num / den
}

func splitFraction(s string) (num, den float64, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	n, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return n, d, true
}
