package rules

import (
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

func init() {
	Register(Rule{
		ID:       "trailing-whitespace",
		Name:     "Trailing whitespace",
		Summary:  "Line ends with whitespace.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Check:    checkTrailingWhitespace,
	})
}

func checkTrailingWhitespace(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	var out []issue.Issue
	for i, line := range f.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == line {
			continue
		}
		start := len(trimmed) + 1
		end := len(line) + 1
		out = append(out, issue.Issue{
			RuleID:   r.Rule.ID,
			Severity: r.Severity,
			Path:     f.Path,
			Line:     i + 1,
			Col:      start,
			EndLine:  i + 1,
			EndCol:   end,
			Message:  "Trailing whitespace at the end of line",
			Edits: []issue.TextEdit{{
				Path:      f.Path,
				StartLine: i + 1,
				StartCol:  start,
				EndLine:   i + 1,
				EndCol:    end,
				NewText:   "",
			}},
		})
	}
	return out
}
