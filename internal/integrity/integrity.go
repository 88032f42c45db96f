// Package integrity converts the result of a bounded decode-validation pass
// into issues. The pass decodes only a fixed-duration window from the start
// of the file, bounding worst-case latency while still catching most
// corruption.
package integrity

import (
	"fmt"

	"github.com/five82/playcheck/internal/rules"
)

// DefaultWindowSecs is the default length of the decode-validation window.
const DefaultWindowSecs = 60

// DecodeResult is the captured outcome of a decode-validation pass.
type DecodeResult struct {
	ExitCode   int
	ErrorLines []string
}

// Clean reports whether the pass completed without any decoder complaints.
func (r DecodeResult) Clean() bool {
	return r.ExitCode == 0 && len(r.ErrorLines) == 0
}

// Evaluate converts a decode-validation result into integrity issues: a
// single Good issue for a clean pass, otherwise one Critical issue per
// captured error line plus a summary Critical issue.
func Evaluate(result DecodeResult, windowSecs int) []rules.Issue {
	if result.Clean() {
		return []rules.Issue{{
			Severity: rules.SeverityGood,
			Category: rules.CategoryIntegrity,
			Rule:     rules.RuleDecodeIntegrity,
			Message:  fmt.Sprintf("first %d seconds decode cleanly", windowSecs),
		}}
	}

	var issues []rules.Issue
	for _, line := range result.ErrorLines {
		issues = append(issues, rules.Issue{
			Severity: rules.SeverityCritical,
			Category: rules.CategoryIntegrity,
			Rule:     rules.RuleDecodeIntegrity,
			Message:  "decoder error: " + line,
		})
	}
	issues = append(issues, rules.Issue{
		Severity: rules.SeverityCritical,
		Category: rules.CategoryIntegrity,
		Rule:     rules.RuleDecodeIntegrity,
		Message: fmt.Sprintf("decode validation failed (exit status %d, %d decoder errors in first %d seconds)",
			result.ExitCode, len(result.ErrorLines), windowSecs),
	})
	return issues
}
