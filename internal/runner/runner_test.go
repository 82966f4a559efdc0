package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/rules"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/version"
)

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths = append(paths, p)
	}
	return dir, paths
}

func configure(t *testing.T, sel rules.Selection, tokens ...string) []*rules.ConfiguredRule {
	t.Helper()
	selected, err := rules.Default().Resolve(sel, version.New(6, 1, 0))
	require.NoError(t, err)
	configured, err := rules.Default().Configure(selected, tokens)
	require.NoError(t, err)
	return configured
}

func TestRunThresholdEscalatesSeverity(t *testing.T) {
	// A rule with default severity W and a threshold of error=6: a line
	// measuring 7 over the limit yields exactly one E issue, rendered by
	// the extended template with a matching end column.
	_, paths := writeFiles(t, map[string]string{
		"suite.robot": strings.Repeat("x", 17) + "\n",
	})
	cfg := configure(t, rules.Selection{
		Select:  []string{"line-too-long"},
		Exclude: []string{"trailing-whitespace", "missing-trailing-blank-line", "mixed-tabs-and-spaces", "file-too-long", "todo-in-comment", "deprecated-singular-header"},
	},
		"line-too-long.line_length=10",
		"line-too-long.severity_threshold=error=16",
	)

	res := Run(context.Background(), paths, cfg, Options{})
	lines := res.Sink.Finalize(issue.ExtendedTemplate)
	require.Len(t, lines, 1)
	assert.Equal(t,
		fmt.Sprintf("%s:1:11:1:18 [E] line-too-long Line is too long (17/10)", paths[0]),
		lines[0])
}

func TestRunOrderIndependentOfConcurrency(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"a.robot": "dirty  \n",
		"b.robot": strings.Repeat("y", 200) + "\n",
		"c.robot": "*** Setting ***\nok\n",
	})
	cfg := configure(t, rules.Selection{})

	serial := Run(context.Background(), paths, cfg, Options{Concurrency: 1})
	parallel := Run(context.Background(), paths, cfg, Options{Concurrency: 8})
	assert.Equal(t,
		serial.Sink.Finalize(issue.DefaultTemplate),
		parallel.Sink.Finalize(issue.DefaultTemplate))
	assert.NotZero(t, serial.Sink.Len())
}

func TestRunSkipsUnreadableFiles(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"ok.robot": "fine\n"})
	missing := filepath.Join(t.TempDir(), "missing.robot")
	cfg := configure(t, rules.Selection{})

	res := Run(context.Background(), append([]string{missing}, paths...), cfg, Options{})
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, missing, res.Skipped[0].Path)
}

func TestRunHonorsInlineSuppression(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"s.robot": strings.Repeat("z", 150) + "  # robocop: disable=line-too-long\n",
	})
	cfg := configure(t, rules.Selection{
		Exclude: []string{"trailing-whitespace", "todo-in-comment"},
	})

	res := Run(context.Background(), paths, cfg, Options{})
	for _, i := range res.Sink.Issues() {
		assert.NotEqual(t, "line-too-long", i.RuleID)
	}
}

func TestRunCollectsFixEdits(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"s.robot": "dirty  \n"})
	cfg := configure(t, rules.Selection{})

	res := Run(context.Background(), paths, cfg, Options{})
	assert.NotEmpty(t, res.Edits)
}

func TestRunCancellationAbandonsRemainingFiles(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 50; i++ {
		files[fmt.Sprintf("f%02d.robot", i)] = "x\n"
	}
	_, paths := writeFiles(t, files)
	cfg := configure(t, rules.Selection{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before starting: no file is analyzed
	res := Run(ctx, paths, cfg, Options{Concurrency: 1})
	assert.Zero(t, res.Sink.Len())
}

func TestExitStatus(t *testing.T) {
	res := &Result{Sink: issue.NewSink()}
	opts := Options{FailThreshold: issue.SeverityWarning}
	assert.Equal(t, ExitOK, res.ExitStatus(opts))

	res.Sink.Record(issue.Issue{Severity: issue.SeverityInfo})
	assert.Equal(t, ExitOK, res.ExitStatus(opts))

	res.Sink.Record(issue.Issue{Severity: issue.SeverityWarning})
	assert.Equal(t, ExitIssues, res.ExitStatus(opts))
}

func TestCheckFileRunsAllRules(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "s.robot")
	require.NoError(t, os.WriteFile(p, []byte("*** Setting ***\nbad line   \n"), 0o644))
	cfg := configure(t, rules.Selection{})

	f, err := sourcefile.Load(p)
	require.NoError(t, err)
	require.NotNil(t, f)

	found, err := checkFile(p, cfg)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, i := range found {
		seen[i.RuleID] = true
	}
	assert.True(t, seen["deprecated-singular-header"])
	assert.True(t, seen["trailing-whitespace"])
}
