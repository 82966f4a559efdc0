package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

// ThresholdEntry pairs a severity with the smallest measured value that
// escalates to it.
type ThresholdEntry struct {
	Severity issue.Severity
	Boundary int
}

// SeverityThreshold escalates a rule's base severity from a measured
// numeric signal. Entries are kept most-severe-first; gaps between
// boundaries intentionally fall through to the base severity.
type SeverityThreshold struct {
	Entries []ThresholdEntry
}

// ParseThreshold reads "level=boundary" pairs separated by ":", e.g.
// "warning=5:error=10". Boundaries must not decrease as severity rises.
func ParseThreshold(raw string) (*SeverityThreshold, error) {
	var entries []ThresholdEntry
	for _, pair := range strings.Split(raw, ":") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, bound, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed threshold pair %q: expected level=boundary", pair)
		}
		sev, ok := issue.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q in threshold: valid levels are info, warning, error", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(bound))
		if err != nil {
			return nil, fmt.Errorf("threshold boundary %q is not numeric", bound)
		}
		entries = append(entries, ThresholdEntry{Severity: sev, Boundary: n})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty severity threshold")
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Severity > entries[j].Severity })
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Boundary < entries[i].Boundary {
			return nil, fmt.Errorf("threshold boundaries must not decrease with severity: %s=%d is below %s=%d",
				entries[i-1].Severity.Name(), entries[i-1].Boundary,
				entries[i].Severity.Name(), entries[i].Boundary)
		}
	}
	return &SeverityThreshold{Entries: entries}, nil
}

// EffectiveSeverity returns the most severe entry whose boundary the
// measured value meets or exceeds, else base.
func (t *SeverityThreshold) EffectiveSeverity(value int, base issue.Severity) issue.Severity {
	if t == nil {
		return base
	}
	for _, e := range t.Entries {
		if value >= e.Boundary {
			return e.Severity
		}
	}
	return base
}

func (t *SeverityThreshold) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Severity.Name(), e.Boundary))
	}
	return strings.Join(parts, ":")
}
