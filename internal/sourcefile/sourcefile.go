// Package sourcefile models one parsed automation source file as handed to
// the diagnostic rules. The real grammar lives upstream; rules only need
// line-level access plus inline suppression markers.
package sourcefile

import (
	"os"
	"strings"
)

// disable markers: "# robocop: disable" suppresses every rule on that
// line, "# robocop: disable=rule-a,rule-b" suppresses the named rules.
const pragmaMarker = "# robocop: disable"

// File is an immutable view of one source file. Safe to share across
// workers after construction.
type File struct {
	Path    string
	Content string
	Lines   []string // without line terminators

	lineStarts []int
	disabled   map[int]map[string]bool // line -> suppressed rule ids, "" = all
}

// Load reads and models the file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, string(b)), nil
}

// New models content as if read from path.
func New(path, content string) *File {
	f := &File{Path: path, Content: content}
	f.index()
	f.scanPragmas()
	return f
}

func (f *File) index() {
	f.lineStarts = append(f.lineStarts, 0)
	for i := 0; i < len(f.Content); i++ {
		if f.Content[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	raw := strings.Split(f.Content, "\n")
	// A trailing newline produces a phantom empty final element.
	if len(raw) > 1 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
		f.lineStarts = f.lineStarts[:len(f.lineStarts)-1]
	}
	f.Lines = make([]string, len(raw))
	for i, l := range raw {
		f.Lines[i] = strings.TrimSuffix(l, "\r")
	}
}

func (f *File) scanPragmas() {
	f.disabled = map[int]map[string]bool{}
	for i, line := range f.Lines {
		idx := strings.Index(line, pragmaMarker)
		if idx < 0 {
			continue
		}
		set := map[string]bool{}
		rest := line[idx+len(pragmaMarker):]
		if strings.HasPrefix(rest, "=") {
			for _, id := range strings.Split(rest[1:], ",") {
				if id = strings.TrimSpace(id); id != "" {
					set[strings.ToLower(id)] = true
				}
			}
		} else {
			set[""] = true // bare disable suppresses everything
		}
		f.disabled[i+1] = set
	}
}

// Disabled reports whether ruleID is suppressed on the 1-based line.
func (f *File) Disabled(line int, ruleID string) bool {
	set, ok := f.disabled[line]
	if !ok {
		return false
	}
	return set[""] || set[strings.ToLower(ruleID)]
}

// LineCount returns the number of modeled lines.
func (f *File) LineCount() int { return len(f.Lines) }

// Offset converts a 1-based (line, col) position into a byte offset in
// Content. Positions past the end of a line clamp to the line terminator.
func (f *File) Offset(line, col int) int {
	if line < 1 {
		return 0
	}
	if line > len(f.lineStarts) {
		return len(f.Content)
	}
	off := f.lineStarts[line-1] + col - 1
	end := len(f.Content)
	if line < len(f.lineStarts) {
		end = f.lineStarts[line]
	}
	if off > end {
		off = end
	}
	return off
}
