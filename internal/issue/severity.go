package issue

import "strings"

// Severity is the importance of a reported issue. Values are totally
// ordered: Info < Warning < Error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the single-letter form used in issue output.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "E"
	case SeverityWarning:
		return "W"
	default:
		return "I"
	}
}

// Name returns the long form used in configuration values.
func (s Severity) Name() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity accepts both the single-letter and long forms,
// case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "error":
		return SeverityError, true
	case "w", "warning":
		return SeverityWarning, true
	case "i", "info":
		return SeverityInfo, true
	default:
		return SeverityWarning, false
	}
}
