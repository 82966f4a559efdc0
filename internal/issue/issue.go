// Package issue holds the diagnostic value types shared by every rule and
// the sink that collects and formats them.
package issue

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// TextEdit is one replacement span inside a source file. Lines and columns
// are 1-based; the end position is exclusive.
type TextEdit struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
	NewText   string `json:"new_text"`
}

// Issue is one reported diagnostic occurrence. Issues are immutable value
// records; end position may equal the start when unknown.
type Issue struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Col      int      `json:"col"`
	EndLine  int      `json:"end_line"`
	EndCol   int      `json:"end_col"`
	Message  string   `json:"message"`
	// Edits, when present, together repair this issue. They never overlap.
	Edits []TextEdit `json:"edits,omitempty"`
}

// HasFix reports whether the issue carries repair edits.
func (i Issue) HasFix() bool { return len(i.Edits) > 0 }

// Built-in output templates. Fields: {source} {line} {col} {end_line}
// {end_col} {severity} {rule_id} {desc}.
const (
	DefaultTemplate  = "{source}:{line}:{col} [{severity}] {rule_id} {desc}"
	ExtendedTemplate = "{source}:{line}:{col}:{end_line}:{end_col} [{severity}] {rule_id} {desc}"
)

// Format renders one issue through a template by named-field substitution.
func Format(template string, i Issue) string {
	r := strings.NewReplacer(
		"{source}", i.Path,
		"{line}", strconv.Itoa(i.Line),
		"{col}", strconv.Itoa(i.Col),
		"{end_line}", strconv.Itoa(i.EndLine),
		"{end_col}", strconv.Itoa(i.EndCol),
		"{severity}", i.Severity.String(),
		"{rule_id}", i.RuleID,
		"{desc}", i.Message,
	)
	return r.Replace(template)
}

// Sink accumulates issues raised by rule executions. Record is safe for
// concurrent use; ordering is restored only at Finalize. Duplicates are
// preserved, never silently dropped.
type Sink struct {
	mu     sync.Mutex
	issues []Issue
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Record(i Issue) {
	s.mu.Lock()
	s.issues = append(s.issues, i)
	s.mu.Unlock()
}

// RecordAll appends a file's worth of issues in one critical section.
func (s *Sink) RecordAll(in []Issue) {
	if len(in) == 0 {
		return
	}
	s.mu.Lock()
	s.issues = append(s.issues, in...)
	s.mu.Unlock()
}

// Len returns the number of recorded issues.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issues)
}

// Issues returns the recorded issues sorted by (path, line, col, rule id).
// The sort is stable so identical spans keep insertion-independent order.
func (s *Sink) Issues() []Issue {
	s.mu.Lock()
	out := make([]Issue, len(s.issues))
	copy(out, s.issues)
	s.mu.Unlock()

	sort.SliceStable(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.Path != y.Path {
			return x.Path < y.Path
		}
		if x.Line != y.Line {
			return x.Line < y.Line
		}
		if x.Col != y.Col {
			return x.Col < y.Col
		}
		return x.RuleID < y.RuleID
	})
	return out
}

// Finalize formats every recorded issue through template in deterministic
// order. Calling it twice over the same issues yields identical output
// regardless of insertion order.
func (s *Sink) Finalize(template string) []string {
	issues := s.Issues()
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, Format(template, i))
	}
	return out
}

// MaxSeverity returns the highest severity recorded, and false when the
// sink is empty.
func (s *Sink) MaxSeverity() (Severity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.issues) == 0 {
		return SeverityInfo, false
	}
	max := SeverityInfo
	for _, i := range s.issues {
		if i.Severity > max {
			max = i.Severity
		}
	}
	return max, true
}
