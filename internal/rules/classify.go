package rules

import "github.com/five82/playcheck/internal/ffprobe"

// stillImageCodecs are video codecs that appear as embedded cover art rather
// than playable video.
var stillImageCodecs = map[string]bool{
	"mjpeg": true,
	"png":   true,
	"bmp":   true,
	"gif":   true,
	"tiff":  true,
}

// Classified partitions stream records by kind, preserving probe order
// within each group.
type Classified struct {
	Video    []ffprobe.Stream
	Audio    []ffprobe.Stream
	Subtitle []ffprobe.Stream
}

// Classify partitions a probe result's streams into video, audio, and
// subtitle groups. Cover-art video entries stay in the Video group: the
// "no video stream present" determination counts them, while detailed
// video-rule evaluation skips them via PlayableVideo.
func Classify(result *ffprobe.Result) Classified {
	var c Classified
	for _, s := range result.Streams {
		switch s.Kind {
		case ffprobe.KindVideo:
			c.Video = append(c.Video, s)
		case ffprobe.KindAudio:
			c.Audio = append(c.Audio, s)
		case ffprobe.KindSubtitle:
			c.Subtitle = append(c.Subtitle, s)
		}
	}
	return c
}

// IsCoverArt reports whether a video stream record is embedded cover art,
// either by its attached-picture disposition or by a still-image codec.
func IsCoverArt(s ffprobe.Stream) bool {
	if s.Kind != ffprobe.KindVideo {
		return false
	}
	if s.Video != nil && s.Video.IsAttachedPic {
		return true
	}
	return stillImageCodecs[s.Codec]
}

// PlayableVideo returns the video streams that undergo detailed rule
// evaluation, excluding still-image cover-art entries.
func (c Classified) PlayableVideo() []ffprobe.Stream {
	var playable []ffprobe.Stream
	for _, s := range c.Video {
		if !IsCoverArt(s) {
			playable = append(playable, s)
		}
	}
	return playable
}
