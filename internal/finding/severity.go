package finding

import (
	"strings"

	"github.com/pkg/errors"
)

// Severity ranks a finding. Lower rank means higher priority.
type Severity int

const (
	High Severity = iota
	Medium
	Low
	Info
)

// Severities is the fixed reporting order.
var Severities = []Severity{High, Medium, Low, Info}

func (s Severity) String() string {
	switch s {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	case Info:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Rank returns the position of s in the reporting order.
func (s Severity) Rank() int {
	return int(s)
}

// Valid reports whether s is one of the four known levels.
func (s Severity) Valid() bool {
	return s >= High && s <= Info
}

// MarshalText lets severities appear as strings in JSON and YAML.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity accepts high, medium, low and info in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return High, nil
	case "medium":
		return Medium, nil
	case "low":
		return Low, nil
	case "info":
		return Info, nil
	}
	return Info, errors.Errorf("unknown severity %q", s)
}
