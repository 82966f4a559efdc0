package rules

import (
	"regexp"
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

var defaultTodoPattern = regexp.MustCompile(`(?i)\b(todo|fixme)\b`)

func init() {
	Register(Rule{
		ID:       "todo-in-comment",
		Name:     "Todo in comment",
		Summary:  "Comment contains a marker such as TODO or FIXME.",
		Severity: issue.SeverityWarning,
		Enabled:  true,
		Params: []Param{
			{Name: "marker_pattern", Kind: ParamPattern, Default: defaultTodoPattern,
				Help: "regular expression matched against comment text"},
		},
		Check: checkTodoInComment,
	})
}

func checkTodoInComment(f *sourcefile.File, r *ConfiguredRule) []issue.Issue {
	re := r.Pattern("marker_pattern")
	if re == nil {
		re = defaultTodoPattern
	}
	var out []issue.Issue
	for i, line := range f.Lines {
		hash := strings.Index(line, "#")
		if hash < 0 {
			continue
		}
		comment := line[hash:]
		loc := re.FindStringIndex(comment)
		if loc == nil {
			continue
		}
		out = append(out, issue.Issue{
			RuleID:   r.Rule.ID,
			Severity: r.Severity,
			Path:     f.Path,
			Line:     i + 1,
			Col:      hash + loc[0] + 1,
			EndLine:  i + 1,
			EndCol:   hash + loc[1] + 1,
			Message:  "Comment contains a work marker: " + comment[loc[0]:loc[1]],
		})
	}
	return out
}
