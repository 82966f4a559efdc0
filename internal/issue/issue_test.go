package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrderingAndParsing(t *testing.T) {
	assert.True(t, SeverityInfo < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)

	for raw, want := range map[string]Severity{
		"I": SeverityInfo, "info": SeverityInfo,
		"W": SeverityWarning, "warning": SeverityWarning,
		"e": SeverityError, "ERROR": SeverityError,
	} {
		got, ok := ParseSeverity(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseSeverity("fatal")
	assert.False(t, ok)
}

func sampleIssues() []Issue {
	return []Issue{
		{RuleID: "b-rule", Severity: SeverityWarning, Path: "b.robot", Line: 2, Col: 1, EndLine: 2, EndCol: 5, Message: "second file"},
		{RuleID: "a-rule", Severity: SeverityError, Path: "a.robot", Line: 10, Col: 3, EndLine: 10, EndCol: 8, Message: "later line"},
		{RuleID: "z-rule", Severity: SeverityInfo, Path: "a.robot", Line: 2, Col: 7, EndLine: 2, EndCol: 7, Message: "same line, later col"},
		{RuleID: "a-rule", Severity: SeverityInfo, Path: "a.robot", Line: 2, Col: 4, EndLine: 2, EndCol: 6, Message: "first"},
	}
}

func TestFinalizeOrderIsDeterministic(t *testing.T) {
	issues := sampleIssues()

	forward := NewSink()
	for _, i := range issues {
		forward.Record(i)
	}
	backward := NewSink()
	for k := len(issues) - 1; k >= 0; k-- {
		backward.Record(issues[k])
	}

	a := forward.Finalize(DefaultTemplate)
	b := backward.Finalize(DefaultTemplate)
	assert.Equal(t, a, b)

	// Idempotent: finalizing again yields the same output.
	assert.Equal(t, a, forward.Finalize(DefaultTemplate))

	require.Len(t, a, 4)
	assert.Equal(t, "a.robot:2:4 [I] a-rule first", a[0])
	assert.Equal(t, "a.robot:2:7 [I] z-rule same line, later col", a[1])
	assert.Equal(t, "a.robot:10:3 [E] a-rule later line", a[2])
	assert.Equal(t, "b.robot:2:1 [W] b-rule second file", a[3])
}

func TestTieBrokenByRuleID(t *testing.T) {
	s := NewSink()
	s.Record(Issue{RuleID: "zeta", Path: "x.robot", Line: 1, Col: 1})
	s.Record(Issue{RuleID: "alpha", Path: "x.robot", Line: 1, Col: 1})
	got := s.Issues()
	assert.Equal(t, "alpha", got[0].RuleID)
	assert.Equal(t, "zeta", got[1].RuleID)
}

func TestDuplicatesArePreserved(t *testing.T) {
	s := NewSink()
	dup := Issue{RuleID: "r", Path: "x.robot", Line: 1, Col: 1, Message: "same"}
	s.Record(dup)
	s.Record(dup)
	assert.Len(t, s.Issues(), 2)
}

func TestExtendedTemplate(t *testing.T) {
	i := Issue{
		RuleID: "line-too-long", Severity: SeverityError,
		Path: "suite.robot", Line: 4, Col: 121, EndLine: 4, EndCol: 131,
		Message: "Line is too long (130/120)",
	}
	assert.Equal(t,
		"suite.robot:4:121:4:131 [E] line-too-long Line is too long (130/120)",
		Format(ExtendedTemplate, i))
	assert.Equal(t,
		"suite.robot:4:121 [E] line-too-long Line is too long (130/120)",
		Format(DefaultTemplate, i))
}

func TestMaxSeverity(t *testing.T) {
	s := NewSink()
	_, any := s.MaxSeverity()
	assert.False(t, any)

	s.Record(Issue{Severity: SeverityInfo})
	s.Record(Issue{Severity: SeverityError})
	s.Record(Issue{Severity: SeverityWarning})
	max, any := s.MaxSeverity()
	assert.True(t, any)
	assert.Equal(t, SeverityError, max)
}
