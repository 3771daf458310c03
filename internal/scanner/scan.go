// Package scanner applies detection rules to source files.
package scanner

import (
	"rscanner/internal/finding"
	"rscanner/internal/pattern"
)

// ScanFile reads path and returns the findings of every applicable pattern,
// line by line, patterns in registry order within a line.
func ScanFile(path string, patterns []*pattern.Pattern, target finding.Platform) ([]finding.Finding, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}
	return ScanSource(src, patterns, target), nil
}

func ScanSource(src *Source, patterns []*pattern.Pattern, target finding.Platform) []finding.Finding {
	var findings []finding.Finding
	for i := range src.Lines {
		for _, p := range patterns {
			if !p.Applies(target) {
				continue
			}
			if !p.Match(src.Lines, i) {
				continue
			}
			findings = append(findings, finding.Finding{
				Vulnerability: p.Name,
				File:          src.Path,
				Line:          i + 1,
				Code:          Context(src.Lines, i),
				Description:   p.Description,
				Severity:      p.Severity,
			})
		}
	}
	return findings
}
