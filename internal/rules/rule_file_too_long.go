package rules

import (
	"fmt"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

func init() {
	Register(Rule{
		ID:       "file-too-long",
		Name:     "File too long",
		Summary:  "File exceeds the configured maximum number of lines.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Params: []Param{
			{Name: "max_lines", Kind: ParamInt, Default: 400, Help: "maximum allowed number of lines"},
			{Name: "severity_threshold", Kind: ParamThreshold, Default: (*SeverityThreshold)(nil),
				Help: "escalate severity by measured line count, e.g. warning=400:error=1000"},
		},
		Check: checkFileTooLong,
	})
}

func checkFileTooLong(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	limit := r.Int("max_lines")
	n := f.LineCount()
	if n <= limit {
		return nil
	}
	return []issue.Issue{{
		RuleID:   r.Rule.ID,
		Severity: r.EffectiveSeverity(n),
		Path:     f.Path,
		Line:     n,
		Col:      1,
		EndLine:  n,
		EndCol:   1,
		Message:  fmt.Sprintf("File has too many lines (%d/%d)", n, limit),
	}}
}
