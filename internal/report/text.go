// Package report renders scan findings for people and for CI systems.
package report

import (
	"fmt"
	"strings"

	"rscanner/internal/finding"
)

const NoFindings = "No vulnerabilities found!"

// Group buckets findings by severity, keeping scan order inside a bucket.
func Group(findings []finding.Finding) map[finding.Severity][]finding.Finding {
	groups := make(map[finding.Severity][]finding.Finding)
	for _, f := range findings {
		groups[f.Severity] = append(groups[f.Severity], f)
	}
	return groups
}

// SeverityCount is one summary row.
type SeverityCount struct {
	Severity finding.Severity
	Count    int
}

// Counts lists the non-empty severities in priority order.
func Counts(findings []finding.Finding) []SeverityCount {
	groups := Group(findings)
	var result []SeverityCount
	for _, sev := range finding.Severities {
		if n := len(groups[sev]); n > 0 {
			result = append(result, SeverityCount{Severity: sev, Count: n})
		}
	}
	return result
}

// Render builds the text report. It is a pure function of its arguments.
func Render(findings []finding.Finding, detailed bool, styler Styler) string {
	if styler == nil {
		styler = Plain
	}
	if len(findings) == 0 {
		return NoFindings + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", styler.Bold("Summary:"))
	fmt.Fprintf(&b, "%d potential vulnerabilities found:\n", len(findings))
	for _, c := range Counts(findings) {
		fmt.Fprintf(&b, "  %s : %d\n", styler.Severity(c.Severity), c.Count)
	}

	fmt.Fprintf(&b, "\n%s\n", styler.Bold("Findings:"))
	groups := Group(findings)
	for _, sev := range finding.Severities {
		for i, f := range groups[sev] {
			fmt.Fprintf(&b, "\n[%d] %s (%s)\n", i+1, styler.Bold(f.Vulnerability), styler.Severity(f.Severity))
			fmt.Fprintf(&b, "File: %s\n", styler.Path(f.File))
			fmt.Fprintf(&b, "Line: %s\n", styler.Path(fmt.Sprint(f.Line)))
			fmt.Fprintf(&b, "Description: %s\n", f.Description)
			if detailed {
				fmt.Fprintf(&b, "\nCode:\n%s\n", f.Code)
			}
		}
	}
	return b.String()
}
