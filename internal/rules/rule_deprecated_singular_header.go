package rules

import (
	"regexp"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

// Singular section headers are accepted but deprecated since release 6.
var singularHeader = regexp.MustCompile(`^\*{3}\s*(Setting|Test Case|Task|Keyword|Variable|Comment)\s*\*{3}`)

func init() {
	Register(Rule{
		ID:       "deprecated-singular-header",
		Name:     "Deprecated singular header",
		Summary:  "Section uses the deprecated singular header form.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Version:  []string{">=6"},
		Check:    checkDeprecatedSingularHeader,
	})
}

func checkDeprecatedSingularHeader(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	var out []issue.Issue
	for i, line := range f.Lines {
		m := singularHeader.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		word := line[m[2]:m[3]]
		out = append(out, issue.Issue{
			RuleID:   r.Rule.ID,
			Severity: r.Severity,
			Path:     f.Path,
			Line:     i + 1,
			Col:      m[2] + 1,
			EndLine:  i + 1,
			EndCol:   m[3] + 1,
			Message:  "Singular section header '" + word + "' is deprecated, use '" + word + "s'",
			Edits: []issue.TextEdit{{
				Path:      f.Path,
				StartLine: i + 1,
				StartCol:  m[2] + 1,
				EndLine:   i + 1,
				EndCol:    m[3] + 1,
				NewText:   word + "s",
			}},
		})
	}
	return out
}
