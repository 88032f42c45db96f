package rules

import (
	"fmt"
	"strings"

	"github.com/five82/playcheck/internal/ffprobe"
)

// Audio codecs every mainstream client decodes directly.
var broadlySupportedAudioCodecs = map[string]bool{
	"aac":  true,
	"ac3":  true,
	"eac3": true,
	"mp3":  true,
}

// dtsFamilyCodecs covers the DTS variants ffprobe reports under one name
// with differing profiles.
var dtsFamilyCodecs = map[string]bool{
	"dts": true,
	"dca": true,
}

// EvaluateAudio applies the audio codec compatibility table to every audio
// stream, in probe order.
func EvaluateAudio(format ffprobe.Format, streams []ffprobe.Stream) []Issue {
	var issues []Issue

	for _, s := range streams {
		c := strings.ToLower(s.Codec)
		ref := streamRef(s.Index)

		switch {
		case broadlySupportedAudioCodecs[c]:
			issues = append(issues, good(RuleAudioCodec, CategoryAudio, ref,
				fmt.Sprintf("audio codec %q plays directly on all mainstream clients", c)))

		case c == "truehd":
			issues = append(issues, warning(RuleAudioCodec, CategoryAudio, ref,
				"TrueHD is lossless and rarely direct-played; add a secondary AAC or AC-3 track"))

		case dtsFamilyCodecs[c]:
			issues = append(issues, warning(RuleAudioCodec, CategoryAudio, ref,
				fmt.Sprintf("DTS-family codec %q has spotty client support; transcoding recommended", describeDTS(s))))

		case strings.HasPrefix(c, "pcm_"):
			issues = append(issues, warning(RuleAudioCodec, CategoryAudio, ref,
				fmt.Sprintf("uncompressed PCM audio (%s) wastes bandwidth; transcode to AAC", c)))

		case c == "flac":
			issues = append(issues, warning(RuleAudioCodec, CategoryAudio, ref,
				"FLAC audio has limited client support; consider an AAC fallback track"))

		case c == "vorbis" || c == "opus":
			if !isNativeWebMFamily(format) && !isNativeOgg(format) {
				issues = append(issues, warning(RuleAudioCodec, CategoryAudio, ref,
					fmt.Sprintf("audio codec %q outside its native Ogg/WebM/Matroska container", c)))
			}
		}
	}

	return issues
}

// describeDTS folds the probe's profile tag into the codec name so DTS-HD MA
// and DTS:X report distinctly from plain DTS.
func describeDTS(s ffprobe.Stream) string {
	if s.Audio != nil && s.Audio.Title != "" {
		return s.Codec + " (" + s.Audio.Title + ")"
	}
	return s.Codec
}
