package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/five82/playcheck/internal/ffprobe"
)

const (
	// GOPSampleWindow is the maximum number of frames sampled per stream for
	// GOP estimation.
	GOPSampleWindow = 1000
	// GOPWarnSize is the estimated GOP size above which seeking degrades
	// enough to warn about.
	GOPWarnSize = 250

	// Level ceilings above which hardware decoder support thins out.
	h264LevelCeiling = 51  // High@5.1
	hevcLevelCeiling = 153 // Main@5.1
)

// hdrTransfers are the transfer characteristics that signal HDR content:
// PQ (SMPTE ST 2084) and HLG (ARIB STD-B67).
var hdrTransfers = map[string]bool{
	"smpte2084":    true,
	"arib-std-b67": true,
}

// hdrPixelFormats are the standard 10-bit layouts expected for HDR video.
var hdrPixelFormats = map[string]bool{
	"yuv420p10le": true,
	"p010le":      true,
	"yuv422p10le": true,
	"yuv444p10le": true,
}

// Video codecs that predate modern streaming clients.
var (
	legacyVideoCodecs = map[string]bool{
		"mpeg2video": true,
		"mpeg1video": true,
	}
	deprecatedVideoCodecs = map[string]bool{
		"vc1":       true,
		"wmv1":      true,
		"wmv2":      true,
		"wmv3":      true,
		"msmpeg4v2": true,
		"msmpeg4v3": true,
	}
	webmFamilyCodecs = map[string]bool{
		"vp8": true,
		"vp9": true,
	}
)

// VideoFindings carries the video evaluator's issues plus the flags later
// stages consume as explicit data rather than shared state.
type VideoFindings struct {
	Issues         []Issue
	IsHDR          bool
	HasDolbyVision bool
	DVProfile      *int
}

// IsHDRTransfer reports whether a transfer characteristic marks HDR content.
// Dolby Vision presence is detected separately from side data and does not
// depend on this.
func IsHDRTransfer(transfer string) bool {
	return hdrTransfers[strings.ToLower(strings.TrimSpace(transfer))]
}

// DolbyVisionProfile scans a video stream's side data for a Dolby Vision
// configuration record. It returns whether one is present and the profile
// number when the record carries one.
func DolbyVisionProfile(v *ffprobe.VideoStream) (bool, *int) {
	for _, sd := range v.SideData {
		t := strings.ToLower(sd.Type)
		if strings.Contains(t, "dovi") || strings.Contains(t, "dolby vision") {
			return true, sd.DVProfile
		}
	}
	return false, nil
}

// EvaluateVideo runs every video rule over the playable video streams. All
// checks are independent; none short-circuits another. At most one issue is
// appended per stream per rule.
func EvaluateVideo(format ffprobe.Format, classified Classified, samples map[int][]ffprobe.FrameSample) VideoFindings {
	var f VideoFindings

	// Presence check counts every video entry, cover art included.
	if len(classified.Video) == 0 {
		f.Issues = append(f.Issues, warning(RuleNoVideo, CategoryVideo, nil, "no video stream present"))
		return f
	}

	for _, s := range classified.PlayableVideo() {
		v := s.Video
		ref := streamRef(s.Index)

		f.Issues = append(f.Issues, checkVideoCodec(s.Codec, format, ref)...)

		// HDR detection via transfer function only.
		if IsHDRTransfer(v.ColorTransfer) {
			f.IsHDR = true
			if hdrPixelFormats[v.PixFmt] {
				f.Issues = append(f.Issues, good(RuleHDRPixelFormat, CategoryVideo, ref,
					fmt.Sprintf("HDR content with standard 10-bit pixel format %s", v.PixFmt)))
			} else {
				f.Issues = append(f.Issues, warning(RuleHDRPixelFormat, CategoryVideo, ref,
					fmt.Sprintf("unusual pixel format %q for HDR content", v.PixFmt)))
			}
		}

		// Dolby Vision via side data, independent of the HDR flag.
		if present, profile := DolbyVisionProfile(v); present {
			f.HasDolbyVision = true
			if f.DVProfile == nil {
				f.DVProfile = profile
			}
			msg := "Dolby Vision metadata present; most clients cannot tone-map it"
			if profile != nil {
				msg = fmt.Sprintf("Dolby Vision profile %d metadata present; most clients cannot tone-map it", *profile)
			}
			f.Issues = append(f.Issues, critical(RuleDolbyVision, CategoryVideo, ref, msg))
		}

		// Interlace: anything but progressive is a playback hazard.
		fieldOrder := strings.ToLower(strings.TrimSpace(v.FieldOrder))
		if fieldOrder != "" && fieldOrder != "progressive" {
			f.Issues = append(f.Issues, critical(RuleInterlace, CategoryVideo, ref,
				fmt.Sprintf("interlaced content (field order %q); clients expect progressive scan", fieldOrder)))
		} else {
			f.Issues = append(f.Issues, good(RuleInterlace, CategoryVideo, ref, "progressive scan"))
		}

		f.Issues = append(f.Issues, checkLevel(s.Codec, v.Level, ref)...)
		f.Issues = append(f.Issues, checkGOP(s.Codec, v.Profile, samples[s.Index], ref)...)
	}

	return f
}

func checkVideoCodec(codec string, format ffprobe.Format, ref *int) []Issue {
	c := strings.ToLower(codec)
	switch {
	case deprecatedVideoCodecs[c]:
		return []Issue{critical(RuleVideoCodec, CategoryVideo, ref,
			fmt.Sprintf("video codec %q has effectively no client support", c))}
	case legacyVideoCodecs[c]:
		return []Issue{warning(RuleVideoCodec, CategoryVideo, ref,
			fmt.Sprintf("video codec %q is legacy; expect server-side transcoding", c))}
	case webmFamilyCodecs[c] && !isNativeWebMFamily(format):
		return []Issue{warning(RuleVideoCodec, CategoryVideo, ref,
			fmt.Sprintf("video codec %q outside its native WebM/Matroska container", c))}
	}
	return nil
}

func checkLevel(codec string, level *int, ref *int) []Issue {
	if level == nil {
		return nil
	}
	switch strings.ToLower(codec) {
	case "h264":
		if *level > h264LevelCeiling {
			return []Issue{warning(RuleVideoLevel, CategoryVideo, ref,
				fmt.Sprintf("H.264 level %d exceeds the widely supported 5.1 ceiling", *level))}
		}
	case "hevc":
		if *level > hevcLevelCeiling {
			return []Issue{warning(RuleVideoLevel, CategoryVideo, ref,
				fmt.Sprintf("HEVC level %d exceeds the widely supported 5.1 ceiling", *level))}
		}
	}
	return nil
}

// checkGOP estimates GOP size from a bounded frame sample. With no I-frames
// in the window the estimate is skipped entirely rather than divided by zero.
func checkGOP(codec, profile string, samples []ffprobe.FrameSample, ref *int) []Issue {
	if len(samples) == 0 {
		return nil
	}

	var iFrames, bFrames int
	for _, fs := range samples {
		switch fs.PictType {
		case "I":
			iFrames++
		case "B":
			bFrames++
		}
	}

	var issues []Issue
	if iFrames > 0 {
		gop := int(math.Round(float64(len(samples)) / float64(iFrames)))
		if gop > GOPWarnSize {
			issues = append(issues, warning(RuleGOPSize, CategoryVideo, ref,
				fmt.Sprintf("estimated GOP size %d frames; large GOPs slow seeking", gop)))
		}
	}

	if bFrames > 0 {
		switch {
		case strings.ToLower(codec) == "h264" && strings.EqualFold(profile, "High 10"):
			issues = append(issues, warning(RuleBFrameProfile, CategoryVideo, ref,
				"B-frames with H.264 High 10 profile strain older hardware decoders"))
		case strings.ToLower(codec) == "hevc" && strings.EqualFold(profile, "Main 10"):
			issues = append(issues, warning(RuleBFrameProfile, CategoryVideo, ref,
				"B-frames with HEVC Main 10 profile strain older hardware decoders"))
		}
	}

	return issues
}
