package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
)

// ParamKind enumerates the closed set of parameter value types. New kinds
// require an explicit case in Param.Parse, not reflection.
type ParamKind int

const (
	ParamInt ParamKind = iota
	ParamSeverity
	ParamPattern
	ParamString
	ParamThreshold
	ParamList
)

func (k ParamKind) String() string {
	switch k {
	case ParamInt:
		return "int"
	case ParamSeverity:
		return "severity"
	case ParamPattern:
		return "pattern"
	case ParamThreshold:
		return "severity-threshold"
	case ParamList:
		return "list"
	default:
		return "string"
	}
}

// Param is one typed, named configuration slot on a rule. Parsing a value
// never mutates anything: it returns a new validated value or an error.
type Param struct {
	Name    string
	Kind    ParamKind
	Default any
	Help    string
}

// Parse validates raw into the param's value type. Errors name the rule
// and parameter so users can self-correct.
func (p Param) Parse(ruleID, raw string) (any, error) {
	switch p.Kind {
	case ParamInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ConfigurationError{
				Detail: fmt.Sprintf("%s.%s: %q is not an integer", ruleID, p.Name, raw),
			}
		}
		return n, nil
	case ParamSeverity:
		sev, ok := issue.ParseSeverity(raw)
		if !ok {
			return nil, &ConfigurationError{
				Detail: fmt.Sprintf("%s.%s: invalid severity %q: choose one of I, W, E", ruleID, p.Name, raw),
			}
		}
		return sev, nil
	case ParamPattern:
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, &ConfigurationError{
				Detail: fmt.Sprintf("%s.%s: invalid pattern %q: %v", ruleID, p.Name, raw, err),
			}
		}
		return re, nil
	case ParamThreshold:
		th, err := ParseThreshold(raw)
		if err != nil {
			return nil, &ConfigurationError{
				Detail: fmt.Sprintf("%s.%s: %v", ruleID, p.Name, err),
			}
		}
		return th, nil
	case ParamList:
		var out []string
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out, nil
	default:
		return raw, nil
	}
}

// DefaultString renders a parameter default for the catalog listing.
func (p Param) DefaultString() string {
	switch v := p.Default.(type) {
	case nil:
		return "none"
	case *regexp.Regexp:
		if v == nil {
			return "none"
		}
		return v.String()
	case *SeverityThreshold:
		if v == nil {
			return "none"
		}
		return v.String()
	case []string:
		return strings.Join(v, ",")
	case issue.Severity:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
