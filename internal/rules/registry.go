package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/version"
)

// Registry holds the immutable rule manifest for a process. The default
// registry is populated by the rule files' init functions (and optional
// external packs) before any run starts, then only read.
type Registry struct {
	rules []Rule
	index map[string]int // lower(id) and lower(name) -> index
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry rule files register into.
func Default() *Registry { return defaultRegistry }

// Register adds a rule to the default registry. Duplicate ids or
// parameter names are programming errors in the manifest, hence panic.
func Register(r Rule) {
	if err := defaultRegistry.Add(r); err != nil {
		panic(err)
	}
}

// Add validates and stores one rule definition.
func (g *Registry) Add(r Rule) error {
	id := strings.ToLower(strings.TrimSpace(r.ID))
	if id == "" {
		return fmt.Errorf("rule with empty id")
	}
	if _, dup := g.index[id]; dup {
		return fmt.Errorf("duplicate rule id %q", r.ID)
	}
	seen := map[string]bool{"severity": true}
	for _, p := range r.Params {
		if seen[p.Name] {
			return fmt.Errorf("rule %s declares parameter %q twice", r.ID, p.Name)
		}
		seen[p.Name] = true
	}
	g.rules = append(g.rules, r)
	g.index[id] = len(g.rules) - 1
	if name := strings.ToLower(strings.TrimSpace(r.Name)); name != "" && name != id {
		g.index[name] = len(g.rules) - 1
	}
	return nil
}

// All returns every registered rule sorted by id.
func (g *Registry) All() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by id or name.
func (g *Registry) Get(token string) (Rule, bool) {
	idx, ok := g.index[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Rule{}, false
	}
	return g.rules[idx], true
}

// Selection partitions the user's rule-selection tokens. Each token names
// a rule id, a rule name, or a glob over either.
type Selection struct {
	Select  []string // force-enable
	Include []string // enable if not already
	Exclude []string // force-disable, highest precedence
}

func isGlob(token string) bool {
	return strings.ContainsAny(token, "*?[")
}

// matchToken reports whether the rule matches one selection token.
func matchToken(r Rule, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	id := strings.ToLower(r.ID)
	name := strings.ToLower(r.Name)
	if isGlob(token) {
		if ok, _ := doublestar.Match(token, id); ok {
			return true
		}
		ok, _ := doublestar.Match(token, name)
		return ok
	}
	return token == id || token == name
}

// checkTokens rejects literal tokens naming no registered rule. Globs
// that match nothing are a no-op, not an error.
func (g *Registry) checkTokens(tokens []string) error {
	for _, t := range tokens {
		if isGlob(t) {
			continue
		}
		if _, ok := g.Get(t); !ok {
			return &ConfigurationError{Detail: fmt.Sprintf("unknown rule %q", t)}
		}
	}
	return nil
}

// Resolve returns the active rules for a run: default-enabled or
// explicitly selected, not excluded, and applicable to the target
// release. The result keeps the registry's id order.
func (g *Registry) Resolve(sel Selection, target version.Version) ([]Rule, error) {
	for _, tokens := range [][]string{sel.Select, sel.Include, sel.Exclude} {
		if err := g.checkTokens(tokens); err != nil {
			return nil, err
		}
	}
	matchAny := func(r Rule, tokens []string) bool {
		for _, t := range tokens {
			if matchToken(r, t) {
				return true
			}
		}
		return false
	}
	var out []Rule
	for _, r := range g.All() {
		enabled := r.Enabled || matchAny(r, sel.Select) || matchAny(r, sel.Include)
		if !enabled || matchAny(r, sel.Exclude) {
			continue
		}
		ok, err := version.MatchesAny(r.Version, target)
		if err != nil {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("rule %s: %v", r.ID, err)}
		}
		if !ok {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Configure applies "rule-id.param=value" tokens to the selected rules.
// Tokens for registered but unselected rules are a no-op; unknown rule
// ids, unknown parameters and invalid values fail the run. The same
// parameter configured twice takes the last value.
func (g *Registry) Configure(selected []Rule, tokens []string) ([]*ConfiguredRule, error) {
	byID := map[string]*ConfiguredRule{}
	out := make([]*ConfiguredRule, 0, len(selected))
	for _, r := range selected {
		c := newConfigured(r)
		byID[strings.ToLower(r.ID)] = c
		out = append(out, c)
	}
	for _, tok := range tokens {
		target, assign, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("malformed configuration %q: expected rule-id.param=value", tok)}
		}
		ruleID, param, ok := strings.Cut(target, ".")
		if !ok {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("malformed configuration %q: expected rule-id.param=value", tok)}
		}
		if _, known := g.Get(ruleID); !known {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("unknown rule %q in configuration %q", ruleID, tok)}
		}
		c, active := byID[strings.ToLower(strings.TrimSpace(ruleID))]
		if !active {
			continue // valid rule, just not selected for this run
		}
		if err := c.set(strings.TrimSpace(param), assign); err != nil {
			return nil, err
		}
	}
	return out, nil
}
