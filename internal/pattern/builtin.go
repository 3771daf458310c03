package pattern

import (
	"regexp"

	"rscanner/internal/finding"
)

// LoadPatterns returns the built-in rules in registration order.
// A malformed literal panics: that is a defect in this file, not a runtime condition.
func LoadPatterns() []*Pattern {
	return []*Pattern{
		{
			Name:        "Reentrancy Vulnerability",
			Description: "Potential reentrancy vulnerability detected. Consider implementing a reentrancy guard or following the checks-effects-interactions pattern.",
			Matcher:     regexp.MustCompile(`invoke(_signed)?\(.*\)`),
			Then:        regexp.MustCompile(`\w+\s*[-+*/]?=`),
			Within:      2,
			Severity:    finding.High,
			Platform:    finding.Solana,
		},
		{
			Name:        "Integer Overflow",
			Description: "Potential integer overflow. Consider using checked, saturating, or wrapping operations.",
			Matcher:     regexp.MustCompile(`\w+\s*[-+*/]=\s*\w+|let\s+\w+\s*=\s*\w+\s*[-+*/]\s*\w+`),
			Severity:    finding.Medium,
			Platform:    finding.All,
		},
		{
			Name:        "Missing Ownership Check",
			Description: "Account ownership is not verified. Always check account.owner before using account data.",
			Matcher:     regexp.MustCompile(`let\s+\w+\s*=\s*next_account_info\(.*\).*;\s*`),
			Unless:      regexp.MustCompile(`owner`),
			Severity:    finding.High,
			Platform:    finding.Solana,
		},
		{
			Name:        "Missing Access Control",
			Description: "Potential missing access control. Verify that only authorized users can call this function.",
			Matcher:     regexp.MustCompile(`pub\s+fn\s+\w+\(.*\).*\{`),
			Unless:      regexp.MustCompile(`require\(|assert\(|if\s+.*==`),
			Severity:    finding.High,
			Platform:    finding.All,
		},
		{
			Name:        "Unchecked Return Value",
			Description: "Return value from external call is not checked. Always check the result of external calls.",
			Matcher:     regexp.MustCompile(`invoke(_signed)?\(.*\);`),
			Unless:      regexp.MustCompile(`^\s*\?`),
			Severity:    finding.Medium,
			Platform:    finding.Solana,
		},
	}
}
