package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

// Diff compares two runs by logical issue identity: an issue is the same
// occurrence when rule, path, position and message all match.
type Diff struct {
	BaseID  string    `json:"base_id"`
	HeadID  string    `json:"head_id"`
	New     []Entry   `json:"new"`
	Fixed   []Entry   `json:"fixed"`
	Changed []Changed `json:"changed"`
}

type Entry struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Message  string `json:"message"`
}

type Changed struct {
	Key          string `json:"key"`
	BaseSeverity string `json:"base_severity"`
	HeadSeverity string `json:"head_severity"`
}

func keyOf(i issue.Issue) string {
	return strings.Join([]string{
		strings.ToLower(i.RuleID), i.Path,
		fmt.Sprintf("%d:%d", i.Line, i.Col), i.Message,
	}, "|")
}

func asEntry(i issue.Issue) Entry {
	return Entry{
		RuleID:   i.RuleID,
		Severity: i.Severity.String(),
		Path:     i.Path,
		Line:     i.Line,
		Col:      i.Col,
		Message:  i.Message,
	}
}

// DiffRuns reports issues new in head, fixed since base, and issues whose
// severity changed. Output ordering is stable across platforms.
func DiffRuns(base, head *Run) Diff {
	bm := map[string]issue.Issue{}
	hm := map[string]issue.Issue{}
	for _, i := range base.Issues {
		bm[keyOf(i)] = i
	}
	for _, i := range head.Issues {
		hm[keyOf(i)] = i
	}

	d := Diff{BaseID: base.ID, HeadID: head.ID}
	for k, hi := range hm {
		bi, ok := bm[k]
		if !ok {
			d.New = append(d.New, asEntry(hi))
			continue
		}
		if bi.Severity != hi.Severity {
			d.Changed = append(d.Changed, Changed{
				Key:          k,
				BaseSeverity: bi.Severity.String(),
				HeadSeverity: hi.Severity.String(),
			})
		}
	}
	for k, bi := range bm {
		if _, ok := hm[k]; !ok {
			d.Fixed = append(d.Fixed, asEntry(bi))
		}
	}

	less := func(a, b Entry) bool {
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.RuleID < b.RuleID
	}
	sort.Slice(d.New, func(i, j int) bool { return less(d.New[i], d.New[j]) })
	sort.Slice(d.Fixed, func(i, j int) bool { return less(d.Fixed[i], d.Fixed[j]) })
	sort.Slice(d.Changed, func(i, j int) bool { return d.Changed[i].Key < d.Changed[j].Key })
	return d
}
