package reporting

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/history"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

func TestWriteRunJSON(t *testing.T) {
	run := &history.Run{
		ID:            "run-x",
		StartedAt:     time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
		TargetVersion: "6.1.0",
		Issues: []issue.Issue{
			{RuleID: "line-too-long", Severity: issue.SeverityError, Path: "a.robot", Line: 1, Col: 121, EndLine: 1, EndCol: 130, Message: "too long"},
		},
	}
	dir := t.TempDir()
	path, err := WriteRunJSON(dir, run)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got history.Run
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, run.ID, got.ID)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, issue.SeverityError, got.Issues[0].Severity)
}

func TestWriteDiffJSON(t *testing.T) {
	d := history.Diff{BaseID: "b", HeadID: "h"}
	dir := t.TempDir()
	path, err := WriteDiffJSON(dir, d)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got history.Diff
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "b", got.BaseID)
	assert.Equal(t, "h", got.HeadID)
}
