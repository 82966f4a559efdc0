package rules

import (
	"fmt"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

func init() {
	Register(Rule{
		ID:       "line-too-long",
		Name:     "Line too long",
		Summary:  "Line exceeds the configured maximum length.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Params: []Param{
			{Name: "line_length", Kind: ParamInt, Default: 120, Help: "maximum allowed line length"},
			{Name: "severity_threshold", Kind: ParamThreshold, Default: (*SeverityThreshold)(nil),
				Help: "escalate severity by measured line length, e.g. warning=140:error=200"},
		},
		Check: checkLineTooLong,
	})
}

func checkLineTooLong(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	limit := r.Int("line_length")
	var out []issue.Issue
	for i, line := range f.Lines {
		n := len([]rune(line))
		if n <= limit {
			continue
		}
		out = append(out, issue.Issue{
			RuleID:   r.Rule.ID,
			Severity: r.EffectiveSeverity(n),
			Path:     f.Path,
			Line:     i + 1,
			Col:      limit + 1,
			EndLine:  i + 1,
			EndCol:   n + 1,
			Message:  fmt.Sprintf("Line is too long (%d/%d)", n, limit),
		})
	}
	return out
}
