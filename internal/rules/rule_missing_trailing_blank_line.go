package rules

import (
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

func init() {
	Register(Rule{
		ID:       "missing-trailing-blank-line",
		Name:     "Missing trailing blank line",
		Summary:  "File does not end with a newline.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Check:    checkMissingTrailingBlankLine,
	})
}

func checkMissingTrailingBlankLine(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	if f.Content == "" || strings.HasSuffix(f.Content, "\n") {
		return nil
	}
	last := f.LineCount()
	col := len(f.Lines[last-1]) + 1
	return []issue.Issue{{
		RuleID:   r.Rule.ID,
		Severity: r.Severity,
		Path:     f.Path,
		Line:     last,
		Col:      col,
		EndLine:  last,
		EndCol:   col,
		Message:  "Missing blank line at the end of file",
		Edits: []issue.TextEdit{{
			Path:      f.Path,
			StartLine: last,
			StartCol:  col,
			EndLine:   last,
			EndCol:    col,
			NewText:   "\n",
		}},
	}}
}
