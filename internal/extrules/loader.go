// Package extrules loads external YAML rule packs and registers them as
// regex-based line rules before a run starts.
package extrules

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/rules"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

type pack struct {
	Rules []packRule `yaml:"rules"`
}

type packRule struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Summary  string   `yaml:"summary"`
	Severity string   `yaml:"severity"` // info|warning|error
	Version  []string `yaml:"version"`  // optional applicability constraints
	Pattern  string   `yaml:"pattern"`  // regex matched against each line
	Message  string   `yaml:"message"`
	Enabled  *bool    `yaml:"enabled"` // default true
}

// LoadAndRegister reads a pack file and registers every rule it declares
// into reg. Returns the number of rules registered.
func LoadAndRegister(path string, reg *rules.Registry) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var p pack
	if err := yaml.Unmarshal(b, &p); err != nil {
		return 0, fmt.Errorf("parse rule pack %s: %w", path, err)
	}
	var n int
	for _, pr := range p.Rules {
		r, err := compile(pr)
		if err != nil {
			return n, fmt.Errorf("rule pack %s: rule %q: %w", path, pr.ID, err)
		}
		if err := reg.Add(r); err != nil {
			return n, fmt.Errorf("rule pack %s: %w", path, err)
		}
		n++
	}
	return n, nil
}

func compile(pr packRule) (rules.Rule, error) {
	if pr.ID == "" || pr.Pattern == "" || pr.Message == "" {
		return rules.Rule{}, fmt.Errorf("missing required fields (id/pattern/message)")
	}
	sev := issue.SeverityWarning
	if pr.Severity != "" {
		s, ok := issue.ParseSeverity(pr.Severity)
		if !ok {
			return rules.Rule{}, fmt.Errorf("unknown severity %q", pr.Severity)
		}
		sev = s
	}
	re, err := regexp.Compile(pr.Pattern)
	if err != nil {
		return rules.Rule{}, fmt.Errorf("pattern: %w", err)
	}
	enabled := pr.Enabled == nil || *pr.Enabled
	name := pr.Name
	if name == "" {
		name = pr.ID
	}
	id, msg := pr.ID, pr.Message
	return rules.Rule{
		ID:       id,
		Name:     name,
		Summary:  pr.Summary,
		Severity: sev,
		Version:  pr.Version,
		Enabled:  enabled,
		Check: func(f *sourcefile.File, r *rules.ConfiguredRule) []issue.Issue {
			var out []issue.Issue
			for i, line := range f.Lines {
				loc := re.FindStringIndex(line)
				if loc == nil {
					continue
				}
				out = append(out, issue.Issue{
					RuleID:   id,
					Severity: r.Severity,
					Path:     f.Path,
					Line:     i + 1,
					Col:      loc[0] + 1,
					EndLine:  i + 1,
					EndCol:   loc[1] + 1,
					Message:  msg,
				})
			}
			return out
		},
	}, nil
}
