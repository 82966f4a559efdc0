package rules

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

func TestParamParseInt(t *testing.T) {
	p := Param{Name: "line_length", Kind: ParamInt, Default: 120}

	v, err := p.Parse("line-too-long", "140")
	require.NoError(t, err)
	assert.Equal(t, 140, v)

	_, err = p.Parse("line-too-long", "abc")
	require.Error(t, err)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Detail, "line-too-long.line_length")
	assert.Contains(t, cerr.Detail, "abc")
}

func TestParamParseSeverity(t *testing.T) {
	p := Param{Name: "level", Kind: ParamSeverity, Default: issue.SeverityWarning}

	v, err := p.Parse("some-rule", "E")
	require.NoError(t, err)
	assert.Equal(t, issue.SeverityError, v)

	v, err = p.Parse("some-rule", "warning")
	require.NoError(t, err)
	assert.Equal(t, issue.SeverityWarning, v)

	_, err = p.Parse("some-rule", "critical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "I, W, E")
}

func TestParamParsePattern(t *testing.T) {
	p := Param{Name: "pattern", Kind: ParamPattern}

	v, err := p.Parse("some-rule", `^foo.*$`)
	require.NoError(t, err)
	re, ok := v.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("foobar"))

	_, err = p.Parse("some-rule", `([`)
	require.Error(t, err)
	var cerr *ConfigurationError
	assert.ErrorAs(t, err, &cerr)
}

func TestParamParseThreshold(t *testing.T) {
	p := Param{Name: "severity_threshold", Kind: ParamThreshold}

	v, err := p.Parse("some-rule", "warning=5:error=10")
	require.NoError(t, err)
	th, ok := v.(*SeverityThreshold)
	require.True(t, ok)
	assert.Equal(t, issue.SeverityError, th.EffectiveSeverity(10, issue.SeverityInfo))

	_, err = p.Parse("some-rule", "warning=oops")
	assert.Error(t, err)
}

func TestParamParseList(t *testing.T) {
	p := Param{Name: "markers", Kind: ParamList}

	v, err := p.Parse("some-rule", "a, b ,c,")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, v)
}
