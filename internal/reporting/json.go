// Package reporting writes machine-readable run artifacts.
package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/history"
)

// WriteRunJSON serializes a run into outDir and returns the file path.
func WriteRunJSON(outDir string, run *history.Run) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, run.ID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDiffJSON serializes a run comparison into outDir.
func WriteDiffJSON(outDir string, d history.Diff) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, "diff_"+d.BaseID+"__"+d.HeadID+".json")
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}
