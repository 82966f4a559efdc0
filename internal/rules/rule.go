// Package rules defines the diagnostic rules, their typed configuration,
// and the registry that resolves and configures them for a run.
package rules

import (
	"regexp"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/sourcefile"
)

// CheckFunc inspects one source file and returns the issues it raises.
// Implementations read only the file and the configured rule; they hold
// no state between calls.
type CheckFunc func(f *sourcefile.File, r *ConfiguredRule) []issue.Issue

// Rule declares one diagnostic: identity, default severity, applicability
// window and parameters. Built once at registry init, immutable after.
type Rule struct {
	ID       string // kebab-case token, e.g. "line-too-long"
	Name     string
	Summary  string
	Severity issue.Severity
	// Version holds constraint strings the active release must satisfy.
	// Elements compose with OR; ";" inside one element means AND.
	// Empty means the rule applies to every release.
	Version []string
	Params  []Param // declared order drives the catalog listing
	Enabled bool    // enabled by default
	Check   CheckFunc
}

// param looks up a declared parameter by name.
func (r Rule) param(name string) (Param, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ConfiguredRule is a Rule plus the resolved parameter values for one run.
// Instances are per-run and never shared across runs.
type ConfiguredRule struct {
	Rule     Rule
	Severity issue.Severity // effective base severity
	values   map[string]any
}

func newConfigured(r Rule) *ConfiguredRule {
	c := &ConfiguredRule{Rule: r, Severity: r.Severity, values: map[string]any{}}
	for _, p := range r.Params {
		c.values[p.Name] = p.Default
	}
	return c
}

// set validates and stores one parameter value, last write winning.
func (c *ConfiguredRule) set(name, raw string) error {
	if name == "severity" {
		sev, ok := issue.ParseSeverity(raw)
		if !ok {
			return &ConfigurationError{
				Detail: c.Rule.ID + ".severity: invalid severity " + raw + ": choose one of I, W, E",
			}
		}
		c.Severity = sev
		return nil
	}
	p, ok := c.Rule.param(name)
	if !ok {
		return unknownParamError(c.Rule, name)
	}
	v, err := p.Parse(c.Rule.ID, raw)
	if err != nil {
		return err
	}
	c.values[name] = v
	return nil
}

// Value returns the resolved parameter value, or nil when undeclared.
func (c *ConfiguredRule) Value(name string) any { return c.values[name] }

func (c *ConfiguredRule) Int(name string) int {
	if v, ok := c.values[name].(int); ok {
		return v
	}
	return 0
}

func (c *ConfiguredRule) Str(name string) string {
	if v, ok := c.values[name].(string); ok {
		return v
	}
	return ""
}

func (c *ConfiguredRule) Pattern(name string) *regexp.Regexp {
	if v, ok := c.values[name].(*regexp.Regexp); ok {
		return v
	}
	return nil
}

func (c *ConfiguredRule) List(name string) []string {
	if v, ok := c.values[name].([]string); ok {
		return v
	}
	return nil
}

func (c *ConfiguredRule) Threshold(name string) *SeverityThreshold {
	if v, ok := c.values[name].(*SeverityThreshold); ok {
		return v
	}
	return nil
}

// EffectiveSeverity escalates the base severity from a measured value via
// the conventional severity_threshold parameter when the rule declares it.
func (c *ConfiguredRule) EffectiveSeverity(value int) issue.Severity {
	return c.Threshold("severity_threshold").EffectiveSeverity(value, c.Severity)
}
