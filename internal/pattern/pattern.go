// Package pattern holds the line-oriented detection rules of the scanner.
package pattern

import (
	"regexp"

	"rscanner/internal/finding"
)

// Pattern is a named detection rule. Patterns are never mutated after
// construction and are shared read-only by every file of a scan.
//
// RE2 has no lookaround, so rules that need it use Unless and Then:
// Unless vetoes a match when it matches the rest of the line after the
// Matcher match, and Then requires a follow-up match on the rest of the
// line or on one of the next Within lines.
type Pattern struct {
	Name        string
	Description string
	Matcher     *regexp.Regexp
	Unless      *regexp.Regexp
	Then        *regexp.Regexp
	Within      int
	Severity    finding.Severity
	Platform    finding.Platform
}

// Applies reports whether p is in scope when scanning for target.
func (p *Pattern) Applies(target finding.Platform) bool {
	return p.Platform == target || p.Platform == finding.All || target == finding.All
}

// Match reports whether p fires on lines[i].
func (p *Pattern) Match(lines []string, i int) bool {
	if i < 0 || i >= len(lines) {
		return false
	}
	line := lines[i]
	loc := p.Matcher.FindStringIndex(line)
	if loc == nil {
		return false
	}
	rest := line[loc[1]:]
	if p.Unless != nil && p.Unless.MatchString(rest) {
		return false
	}
	if p.Then == nil {
		return true
	}
	if p.Then.MatchString(rest) {
		return true
	}
	for j := i + 1; j <= i+p.Within && j < len(lines); j++ {
		if p.Then.MatchString(lines[j]) {
			return true
		}
	}
	return false
}
