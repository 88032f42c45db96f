package rules

import (
	"fmt"
	"strings"

	"github.com/five82/playcheck/internal/ffprobe"
)

// Container tags grouped by how badly streaming clients handle them.
var (
	archaicContainerTags = map[string]bool{
		"avi": true,
	}
	deprecatedContainerTags = map[string]bool{
		"asf": true,
		"wmv": true,
	}
	modernContainerTags = map[string]bool{
		"matroska": true,
		"webm":     true,
		"mov":      true,
		"mp4":      true,
		"m4a":      true,
		"3gp":      true,
		"3g2":      true,
		"mj2":      true,
	}
)

// EvaluateContainer checks the container format against the compatibility
// tables and returns container-category issues.
func EvaluateContainer(format ffprobe.Format) []Issue {
	var issues []Issue

	for _, name := range format.Names {
		tag := strings.ToLower(name)
		switch {
		case deprecatedContainerTags[tag]:
			issues = append(issues, critical(RuleContainerFormat, CategoryContainer, nil,
				fmt.Sprintf("container format %q is deprecated and widely unsupported by streaming clients", tag)))
			return issues
		case archaicContainerTags[tag]:
			issues = append(issues, warning(RuleContainerFormat, CategoryContainer, nil,
				fmt.Sprintf("container format %q is archaic; most clients will require remuxing or transcoding", tag)))
			return issues
		}
	}

	for _, name := range format.Names {
		if modernContainerTags[strings.ToLower(name)] {
			issues = append(issues, good(RuleContainerFormat, CategoryContainer, nil,
				fmt.Sprintf("container format %q is broadly supported", strings.ToLower(name))))
			return issues
		}
	}

	return issues
}

// isNativeWebMFamily reports whether the container is the native home of the
// VP8/VP9/Vorbis/Opus codec family.
func isNativeWebMFamily(format ffprobe.Format) bool {
	return format.HasName("webm") || format.HasName("matroska")
}

// isNativeOgg reports whether the container is Ogg.
func isNativeOgg(format ffprobe.Format) bool {
	return format.HasName("ogg")
}
