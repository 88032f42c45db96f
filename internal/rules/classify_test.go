package rules

import (
	"testing"

	"github.com/five82/playcheck/internal/ffprobe"
)

func videoStream(index int, codec string) ffprobe.Stream {
	return ffprobe.Stream{Index: index, Kind: ffprobe.KindVideo, Codec: codec, Video: &ffprobe.VideoStream{}}
}

func audioStream(index int, codec string) ffprobe.Stream {
	return ffprobe.Stream{Index: index, Kind: ffprobe.KindAudio, Codec: codec, Audio: &ffprobe.AudioStream{}}
}

func subtitleStream(index int, codec string) ffprobe.Stream {
	return ffprobe.Stream{Index: index, Kind: ffprobe.KindSubtitle, Codec: codec, Subtitle: &ffprobe.SubtitleStream{}}
}

func TestClassifyPreservesOrder(t *testing.T) {
	result := &ffprobe.Result{Streams: []ffprobe.Stream{
		videoStream(0, "h264"),
		audioStream(1, "aac"),
		audioStream(2, "ac3"),
		subtitleStream(3, "subrip"),
		videoStream(4, "mjpeg"),
	}}

	c := Classify(result)
	if len(c.Video) != 2 || len(c.Audio) != 2 || len(c.Subtitle) != 1 {
		t.Fatalf("partition = %d/%d/%d, want 2/2/1", len(c.Video), len(c.Audio), len(c.Subtitle))
	}
	if c.Video[0].Index != 0 || c.Video[1].Index != 4 {
		t.Errorf("video order = %d,%d", c.Video[0].Index, c.Video[1].Index)
	}
	if c.Audio[0].Index != 1 || c.Audio[1].Index != 2 {
		t.Errorf("audio order = %d,%d", c.Audio[0].Index, c.Audio[1].Index)
	}
}

// A file whose only video entry is cover art counts as having video for the
// presence check, yet gets no per-stream video evaluation.
func TestCoverArtAsymmetry(t *testing.T) {
	result := &ffprobe.Result{Streams: []ffprobe.Stream{
		videoStream(0, "mjpeg"),
		audioStream(1, "aac"),
	}}

	c := Classify(result)
	if len(c.Video) != 1 {
		t.Fatalf("cover art missing from Video group")
	}
	if len(c.PlayableVideo()) != 0 {
		t.Fatal("cover art counted as playable video")
	}

	findings := EvaluateVideo(ffprobe.Format{Names: []string{"mp4"}}, c, nil)
	for _, issue := range findings.Issues {
		if issue.Rule == RuleNoVideo {
			t.Error("presence check fired despite cover art entry")
		}
	}
	if len(findings.Issues) != 0 {
		t.Errorf("got %d video issues for cover-art-only file, want 0", len(findings.Issues))
	}
}

func TestIsCoverArt(t *testing.T) {
	for _, codec := range []string{"mjpeg", "png", "bmp", "gif", "tiff"} {
		if !IsCoverArt(videoStream(0, codec)) {
			t.Errorf("IsCoverArt(%s) = false", codec)
		}
	}
	if IsCoverArt(videoStream(0, "h264")) {
		t.Error("IsCoverArt(h264) = true")
	}
	if IsCoverArt(audioStream(0, "mjpeg")) {
		t.Error("audio stream classified as cover art")
	}
}

// Some muxers store cover art with a regular video codec and mark it only
// through the attached-picture disposition.
func TestAttachedPicDispositionIsCoverArt(t *testing.T) {
	attached := ffprobe.Stream{
		Index: 1,
		Kind:  ffprobe.KindVideo,
		Codec: "h264",
		Video: &ffprobe.VideoStream{IsAttachedPic: true},
	}
	if !IsCoverArt(attached) {
		t.Fatal("attached-picture stream not treated as cover art")
	}

	result := &ffprobe.Result{Streams: []ffprobe.Stream{
		videoStream(0, "h264"),
		attached,
	}}
	c := Classify(result)
	playable := c.PlayableVideo()
	if len(playable) != 1 || playable[0].Index != 0 {
		t.Fatalf("playable video = %v, want only stream 0", playable)
	}
}
