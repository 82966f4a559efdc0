// Package fix applies rule-proposed text edits to source files, either in
// place or as unified diffs.
package fix

import (
	"fmt"
	"os"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

// Mode selects what Apply does with the corrected text.
type Mode int

const (
	// ModeWrite mutates files in place.
	ModeWrite Mode = iota
	// ModeDiff renders a unified diff per file and never touches disk.
	ModeDiff
)

// ConflictError reports two overlapping edits for one file. It is always
// surfaced, never resolved by silently picking one edit.
type ConflictError struct {
	Path string
	A, B issue.TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting edits for %s: %d:%d-%d:%d overlaps %d:%d-%d:%d",
		e.Path,
		e.A.StartLine, e.A.StartCol, e.A.EndLine, e.A.EndCol,
		e.B.StartLine, e.B.StartCol, e.B.EndLine, e.B.EndCol)
}

// FileResult is the per-file outcome of Apply.
type FileResult struct {
	Path    string
	Applied int    // number of edits spliced in
	Diff    string // unified diff, ModeDiff only
	Err     error  // conflict or I/O failure; file left untouched
}

type span struct {
	start, end int
	edit       issue.TextEdit
}

// Apply groups edits by file and applies each file's set atomically:
// either every edit lands or none does. A failing file is reported and
// the remaining files are still attempted.
func Apply(edits []issue.TextEdit, mode Mode) []FileResult {
	byPath := map[string][]issue.TextEdit{}
	var paths []string
	for _, e := range edits {
		if _, seen := byPath[e.Path]; !seen {
			paths = append(paths, e.Path)
		}
		byPath[e.Path] = append(byPath[e.Path], e)
	}
	sort.Strings(paths)

	out := make([]FileResult, 0, len(paths))
	for _, p := range paths {
		out = append(out, applyFile(p, byPath[p], mode))
	}
	return out
}

func applyFile(path string, edits []issue.TextEdit, mode Mode) FileResult {
	res := FileResult{Path: path}

	f, err := sourcefile.Load(path)
	if err != nil {
		res.Err = err
		return res
	}

	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		spans = append(spans, span{
			start: f.Offset(e.StartLine, e.StartCol),
			end:   f.Offset(e.EndLine, e.EndCol),
			edit:  e,
		})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			res.Err = &ConflictError{Path: path, A: spans[i-1].edit, B: spans[i].edit}
			return res
		}
	}

	// Splice from the end toward the start so earlier offsets stay valid.
	text := f.Content
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		text = text[:s.start] + s.edit.NewText + text[s.end:]
	}
	res.Applied = len(spans)

	if mode == ModeDiff {
		res.Diff, res.Err = unified(path, f.Content, text)
		return res
	}
	if err := writeFile(path, text); err != nil {
		res.Err = err
		res.Applied = 0
	}
	return res
}

func writeFile(path, text string) error {
	info, err := os.Stat(path)
	perm := os.FileMode(0o644)
	if err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), perm)
}

func unified(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}
