package rules

import (
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

func init() {
	Register(Rule{
		ID:       "mixed-tabs-and-spaces",
		Name:     "Mixed tabs and spaces",
		Summary:  "Line indentation mixes tab and space characters.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Check:    checkMixedTabsAndSpaces,
	})
}

func checkMixedTabsAndSpaces(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	var out []issue.Issue
	for i, line := range f.Lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !strings.Contains(indent, "\t") || !strings.Contains(indent, " ") {
			continue
		}
		out = append(out, issue.Issue{
			RuleID:   r.Rule.ID,
			Severity: r.Severity,
			Path:     f.Path,
			Line:     i + 1,
			Col:      1,
			EndLine:  i + 1,
			EndCol:   len(indent) + 1,
			Message:  "Line indentation mixes tabs and spaces",
		})
	}
	return out
}
