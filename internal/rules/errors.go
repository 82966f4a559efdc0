package rules

import (
	"fmt"
	"strings"
)

// ConfigurationError is fatal to the run but not to the process: it is
// reported before any file is analyzed so the user can self-correct.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

// unknownParamError builds the discoverability listing required when a
// parameter name is not declared on the targeted rule: every valid
// parameter with its type, default and help, in declared order.
func unknownParamError(r Rule, name string) *ConfigurationError {
	var b strings.Builder
	fmt.Fprintf(&b, "rule %s has no parameter %q. Available parameters:\n", r.ID, name)
	fmt.Fprintf(&b, "  severity (severity, default=%s): base severity of reported issues\n", r.Severity)
	for _, p := range r.Params {
		fmt.Fprintf(&b, "  %s (%s, default=%s): %s\n", p.Name, p.Kind, p.DefaultString(), p.Help)
	}
	return &ConfigurationError{Detail: strings.TrimRight(b.String(), "\n")}
}
