// Package version implements the version-constraint sublanguage used to
// decide whether a rule applies to the active Robot Framework release.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a concrete 3-part release version. It is built once per run
// from the runtime in use and shared read-only across workers.
type Version struct {
	Major int
	Minor int
	Patch int
}

func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse reads "MAJOR(.MINOR(.PATCH)?)?" into a Version. Missing components
// default to zero. Wildcards are not valid in a concrete version.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, &ParseError{Input: s, Reason: "expected MAJOR(.MINOR(.PATCH)?)?"}
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: fmt.Sprintf("component %q is not numeric", p)}
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseError reports a malformed constraint or version string. It is
// surfaced to the caller that requested the parse and never partially
// applied.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version specifier %q: %s", e.Input, e.Reason)
}

type op int

const (
	opEq op = iota
	opGE
	opLE
	opLT
	opGT
)

const wildcard = -1 // component value meaning "match any"

// Specifier is one parsed constraint: an operator over a partial version
// where any component may be a wildcard (wildcards only with ==).
type Specifier struct {
	op    op
	parts [3]int // wildcard where unspecified or '*'
	raw   string
}

// ParseSpecifier parses a single constraint like ">=5", "==1.2.*" or "4.1".
// The operator defaults to == when omitted.
func ParseSpecifier(s string) (Specifier, error) {
	raw := s
	s = strings.TrimSpace(s)
	spec := Specifier{op: opEq, parts: [3]int{wildcard, wildcard, wildcard}, raw: raw}

	switch {
	case strings.HasPrefix(s, "=="):
		spec.op, s = opEq, s[2:]
	case strings.HasPrefix(s, ">="):
		spec.op, s = opGE, s[2:]
	case strings.HasPrefix(s, "<="):
		spec.op, s = opLE, s[2:]
	case strings.HasPrefix(s, "<"):
		spec.op, s = opLT, s[1:]
	case strings.HasPrefix(s, ">"):
		spec.op, s = opGT, s[1:]
	case strings.HasPrefix(s, "="), strings.HasPrefix(s, "!"):
		return Specifier{}, &ParseError{Input: raw, Reason: "unrecognized operator"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Specifier{}, &ParseError{Input: raw, Reason: "missing version"}
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Specifier{}, &ParseError{Input: raw, Reason: "too many version components"}
	}
	for i, p := range parts {
		if p == "*" {
			if spec.op != opEq {
				return Specifier{}, &ParseError{Input: raw, Reason: "wildcard requires the == operator"}
			}
			continue // leave as wildcard
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Specifier{}, &ParseError{Input: raw, Reason: fmt.Sprintf("component %q is not numeric", p)}
		}
		spec.parts[i] = n
	}
	return spec, nil
}

// Matches reports whether v satisfies the specifier. For == wildcard
// components are ignored; for ordering operators unspecified components
// pad to zero and the full triples are compared.
func (sp Specifier) Matches(v Version) bool {
	have := [3]int{v.Major, v.Minor, v.Patch}
	if sp.op == opEq {
		for i := range sp.parts {
			if sp.parts[i] != wildcard && sp.parts[i] != have[i] {
				return false
			}
		}
		return true
	}
	cmp := 0
	for i := range sp.parts {
		want := sp.parts[i]
		if want == wildcard {
			want = 0
		}
		if have[i] != want {
			if have[i] > want {
				cmp = 1
			} else {
				cmp = -1
			}
			break
		}
	}
	switch sp.op {
	case opGE:
		return cmp >= 0
	case opLE:
		return cmp <= 0
	case opGT:
		return cmp > 0
	default: // opLT
		return cmp < 0
	}
}

func (sp Specifier) String() string { return strings.TrimSpace(sp.raw) }

// Matches evaluates one constraint string against v. A ";" inside the
// string joins specifiers with logical AND. An empty string matches
// everything: absence of a constraint means no restriction.
func Matches(constraint string, v Version) (bool, error) {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return true, nil
	}
	for _, part := range strings.Split(constraint, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sp, err := ParseSpecifier(part)
		if err != nil {
			return false, err
		}
		if !sp.Matches(v) {
			return false, nil
		}
	}
	return true, nil
}

// MatchesAny evaluates a list of constraint strings with logical OR: the
// version matches if any element matches. This is the only place OR
// composition is expressed. An empty list matches everything.
func MatchesAny(constraints []string, v Version) (bool, error) {
	if len(constraints) == 0 {
		return true, nil
	}
	for _, c := range constraints {
		ok, err := Matches(c, v)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
