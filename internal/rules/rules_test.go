package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/version"
)

// configureOne resolves and configures a single built-in rule for tests.
func configureOne(t *testing.T, id string, tokens ...string) *ConfiguredRule {
	t.Helper()
	r, ok := Default().Get(id)
	require.True(t, ok, id)
	configured, err := Default().Configure([]Rule{r}, tokens)
	require.NoError(t, err)
	require.Len(t, configured, 1)
	return configured[0]
}

func TestLineTooLong(t *testing.T) {
	cr := configureOne(t, "line-too-long", "line-too-long.line_length=10")
	f := sourcefile.New("s.robot", "short\n"+strings.Repeat("x", 15)+"\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 11, got[0].Col)
	assert.Equal(t, 16, got[0].EndCol)
	assert.Equal(t, issue.SeverityWarning, got[0].Severity)
	assert.Contains(t, got[0].Message, "(15/10)")
}

func TestLineTooLongThresholdEscalation(t *testing.T) {
	cr := configureOne(t, "line-too-long",
		"line-too-long.line_length=10",
		"line-too-long.severity_threshold=warning=11:error=20")
	f := sourcefile.New("s.robot",
		strings.Repeat("a", 12)+"\n"+strings.Repeat("b", 25)+"\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 2)
	assert.Equal(t, issue.SeverityWarning, got[0].Severity)
	assert.Equal(t, issue.SeverityError, got[1].Severity)
}

func TestTrailingWhitespaceProposesFix(t *testing.T) {
	cr := configureOne(t, "trailing-whitespace")
	f := sourcefile.New("s.robot", "clean\ndirty  \n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 1)
	require.Len(t, got[0].Edits, 1)
	e := got[0].Edits[0]
	assert.Equal(t, 2, e.StartLine)
	assert.Equal(t, 6, e.StartCol)
	assert.Equal(t, 8, e.EndCol)
	assert.Equal(t, "", e.NewText)
}

func TestMissingTrailingBlankLine(t *testing.T) {
	cr := configureOne(t, "missing-trailing-blank-line")

	got := cr.Rule.Check(sourcefile.New("s.robot", "abc\ndef"), cr)
	require.Len(t, got, 1)
	assert.Equal(t, "\n", got[0].Edits[0].NewText)

	got = cr.Rule.Check(sourcefile.New("s.robot", "abc\ndef\n"), cr)
	assert.Empty(t, got)
}

func TestMixedTabsAndSpaces(t *testing.T) {
	cr := configureOne(t, "mixed-tabs-and-spaces")
	f := sourcefile.New("s.robot", "\t  mixed\n    spaces only\n\ttabs only\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
}

func TestFileTooLong(t *testing.T) {
	cr := configureOne(t, "file-too-long",
		"file-too-long.max_lines=3",
		"file-too-long.severity_threshold=error=5")
	f := sourcefile.New("s.robot", "1\n2\n3\n4\n5\n6\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].Line)
	assert.Equal(t, issue.SeverityError, got[0].Severity)
}

func TestTodoInComment(t *testing.T) {
	cr := configureOne(t, "todo-in-comment")
	f := sourcefile.New("s.robot", ""+
		"Keyword With Todo Name\n"+ // not a comment: ignored
		"Run    # TODO: replace\n"+
		"Other  # fixme later\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 3, got[1].Line)
}

func TestTodoInCommentCustomPattern(t *testing.T) {
	cr := configureOne(t, "todo-in-comment", `todo-in-comment.marker_pattern=(?i)\bhack\b`)
	f := sourcefile.New("s.robot", "x  # TODO ignored now\ny  # a HACK lives here\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Line)
}

func TestDeprecatedSingularHeader(t *testing.T) {
	cr := configureOne(t, "deprecated-singular-header")
	f := sourcefile.New("s.robot", "*** Setting ***\n*** Test Cases ***\n*** Keyword ***\n")

	got := cr.Rule.Check(f, cr)
	require.Len(t, got, 2)
	assert.Equal(t, "Settings", got[0].Edits[0].NewText)
	assert.Equal(t, "Keywords", got[1].Edits[0].NewText)
}

func TestDeprecatedSingularHeaderVersionGated(t *testing.T) {
	r, ok := Default().Get("deprecated-singular-header")
	require.True(t, ok)
	ok, err := version.MatchesAny(r.Version, version.New(5, 0, 0))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = version.MatchesAny(r.Version, version.New(6, 0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}
