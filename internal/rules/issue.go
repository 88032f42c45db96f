// Package rules implements the compatibility rule evaluators. Each evaluator
// is a pure function from the typed probe model to an ordered list of
// severity-tagged issues; rule tables are read-only package data.
package rules

// Severity classifies how strongly an issue affects playback.
type Severity int

const (
	// SeverityGood confirms a property that plays back cleanly.
	SeverityGood Severity = iota
	// SeverityWarning flags a property that may degrade playback or force
	// server-side transcoding.
	SeverityWarning
	// SeverityCritical flags a property that commonly breaks direct playback.
	SeverityCritical
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityGood:
		return "good"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Category identifies which part of the file an issue concerns.
type Category int

const (
	// CategoryContainer covers container-format issues.
	CategoryContainer Category = iota
	// CategoryVideo covers video stream issues.
	CategoryVideo
	// CategoryAudio covers audio stream issues.
	CategoryAudio
	// CategorySubtitle covers subtitle stream issues.
	CategorySubtitle
	// CategoryIntegrity covers decode-integrity issues.
	CategoryIntegrity
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryContainer:
		return "container"
	case CategoryVideo:
		return "video"
	case CategoryAudio:
		return "audio"
	case CategorySubtitle:
		return "subtitle"
	case CategoryIntegrity:
		return "integrity"
	default:
		return "unknown"
	}
}

// Rule identifies which compatibility rule produced an issue. The
// aggregator maps rules to recommendations, so the mapping stays a pure
// function of the issue list instead of matching on message text.
type Rule int

const (
	// RuleContainerFormat covers container-format compatibility.
	RuleContainerFormat Rule = iota
	// RuleNoVideo covers the video-presence determination.
	RuleNoVideo
	// RuleVideoCodec covers the video codec compatibility table.
	RuleVideoCodec
	// RuleHDRPixelFormat covers pixel-format checks on HDR content.
	RuleHDRPixelFormat
	// RuleDolbyVision covers Dolby Vision side-data detection.
	RuleDolbyVision
	// RuleInterlace covers field-order checks.
	RuleInterlace
	// RuleVideoLevel covers codec level ceilings.
	RuleVideoLevel
	// RuleGOPSize covers the GOP-size estimate.
	RuleGOPSize
	// RuleBFrameProfile covers B-frames on decoder-straining profiles.
	RuleBFrameProfile
	// RuleAudioCodec covers the audio codec compatibility table.
	RuleAudioCodec
	// RuleSubtitleFormat covers embedded subtitle formats.
	RuleSubtitleFormat
	// RuleSubtitleDisposition covers forced/default flag consistency.
	RuleSubtitleDisposition
	// RuleSidecarSubtitle covers external subtitle file discovery.
	RuleSidecarSubtitle
	// RuleDecodeIntegrity covers the decode-validation pass.
	RuleDecodeIntegrity
)

// Issue is a single severity-tagged finding about a file.
type Issue struct {
	Severity Severity
	Category Category
	Rule     Rule
	Message  string
	// StreamIndex references the stream the issue concerns, nil for
	// container-level and file-level findings.
	StreamIndex *int
}

func good(rule Rule, cat Category, index *int, msg string) Issue {
	return Issue{Severity: SeverityGood, Category: cat, Rule: rule, Message: msg, StreamIndex: index}
}

func warning(rule Rule, cat Category, index *int, msg string) Issue {
	return Issue{Severity: SeverityWarning, Category: cat, Rule: rule, Message: msg, StreamIndex: index}
}

func critical(rule Rule, cat Category, index *int, msg string) Issue {
	return Issue{Severity: SeverityCritical, Category: cat, Rule: rule, Message: msg, StreamIndex: index}
}

func streamRef(index int) *int {
	return &index
}
