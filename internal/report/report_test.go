package report

import (
	"testing"

	"github.com/five82/playcheck/internal/rules"
)

func issue(sev rules.Severity, cat rules.Category, rule rules.Rule, msg string) rules.Issue {
	return rules.Issue{Severity: sev, Category: cat, Rule: rule, Message: msg}
}

func TestAggregateOrdering(t *testing.T) {
	in := Inputs{
		Container: []rules.Issue{issue(rules.SeverityGood, rules.CategoryContainer, rules.RuleContainerFormat, "c")},
		Video: rules.VideoFindings{Issues: []rules.Issue{
			issue(rules.SeverityCritical, rules.CategoryVideo, rules.RuleDolbyVision, "v"),
		}},
		Audio:     []rules.Issue{issue(rules.SeverityWarning, rules.CategoryAudio, rules.RuleAudioCodec, "a")},
		Subtitle:  []rules.Issue{issue(rules.SeverityGood, rules.CategorySubtitle, rules.RuleSubtitleFormat, "s")},
		Integrity: []rules.Issue{issue(rules.SeverityCritical, rules.CategoryIntegrity, rules.RuleDecodeIntegrity, "i")},
	}

	diag := Aggregate(Summary{Path: "x.mkv"}, in)

	wantCats := []rules.Category{
		rules.CategoryContainer,
		rules.CategoryVideo,
		rules.CategoryAudio,
		rules.CategorySubtitle,
		rules.CategoryIntegrity,
	}
	if len(diag.Issues) != len(wantCats) {
		t.Fatalf("got %d issues, want %d", len(diag.Issues), len(wantCats))
	}
	for i, want := range wantCats {
		if diag.Issues[i].Category != want {
			t.Errorf("issue %d category = %v, want %v", i, diag.Issues[i].Category, want)
		}
	}
	if diag.CriticalCount != 2 {
		t.Errorf("critical count = %d, want 2", diag.CriticalCount)
	}
}

func TestAggregateIsPure(t *testing.T) {
	in := Inputs{
		Video: rules.VideoFindings{
			Issues:         []rules.Issue{issue(rules.SeverityCritical, rules.CategoryVideo, rules.RuleDolbyVision, "dv")},
			IsHDR:          true,
			HasDolbyVision: true,
		},
	}
	summary := Summary{Path: "x.mkv", Container: "matroska"}

	first := Aggregate(summary, in)
	second := Aggregate(summary, in)

	if len(first.Issues) != len(second.Issues) || first.CriticalCount != second.CriticalCount {
		t.Error("repeated aggregation differs")
	}
	if len(first.Recommendations) != len(second.Recommendations) {
		t.Error("repeated aggregation yields different recommendations")
	}
	if !first.IsHDR || !first.HasDolbyVision {
		t.Error("video flags not threaded through")
	}
}

func TestRecommendationsDeduplicated(t *testing.T) {
	// Two audio streams with the same codec problem recommend once.
	in := Inputs{
		Audio: []rules.Issue{
			issue(rules.SeverityWarning, rules.CategoryAudio, rules.RuleAudioCodec, "truehd on stream 1"),
			issue(rules.SeverityWarning, rules.CategoryAudio, rules.RuleAudioCodec, "dts on stream 2"),
		},
	}

	diag := Aggregate(Summary{}, in)
	if len(diag.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1: %v", len(diag.Recommendations), diag.Recommendations)
	}
}

func TestGoodIssuesProduceNoRecommendations(t *testing.T) {
	in := Inputs{
		Container: []rules.Issue{issue(rules.SeverityGood, rules.CategoryContainer, rules.RuleContainerFormat, "fine")},
		Integrity: []rules.Issue{issue(rules.SeverityGood, rules.CategoryIntegrity, rules.RuleDecodeIntegrity, "clean")},
	}

	diag := Aggregate(Summary{}, in)
	if len(diag.Recommendations) != 0 {
		t.Fatalf("got recommendations for an all-good report: %v", diag.Recommendations)
	}
	if diag.HasProblems() {
		t.Error("HasProblems = true for an all-good report")
	}
}

func TestRecommendationOrderFollowsIssues(t *testing.T) {
	in := Inputs{
		Container: []rules.Issue{issue(rules.SeverityWarning, rules.CategoryContainer, rules.RuleContainerFormat, "avi")},
		Video: rules.VideoFindings{Issues: []rules.Issue{
			issue(rules.SeverityCritical, rules.CategoryVideo, rules.RuleDolbyVision, "dv"),
		}},
	}

	diag := Aggregate(Summary{}, in)
	if len(diag.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(diag.Recommendations))
	}
	// Container issues precede video issues, so the remux recommendation
	// comes first.
	if diag.Recommendations[0] != "remux to a modern container (MKV or MP4)" {
		t.Errorf("first recommendation = %q", diag.Recommendations[0])
	}
}

func TestHasProblems(t *testing.T) {
	warn := Aggregate(Summary{}, Inputs{
		Audio: []rules.Issue{issue(rules.SeverityWarning, rules.CategoryAudio, rules.RuleAudioCodec, "w")},
	})
	if !warn.HasProblems() {
		t.Error("warning-bearing report reports no problems")
	}

	empty := Aggregate(Summary{}, Inputs{})
	if empty.HasProblems() {
		t.Error("empty report reports problems")
	}
}
