package pattern

import (
	"rscanner/internal/finding"
)

// Registry is the ordered rule set of one scan invocation.
type Registry struct {
	patterns []*Pattern
}

func NewRegistry(patterns ...*Pattern) *Registry {
	r := &Registry{
		patterns: make([]*Pattern, 0, len(patterns)),
	}
	r.Add(patterns...)
	return r
}

// NewDefaultRegistry holds the built-in rules only.
func NewDefaultRegistry() *Registry {
	return NewRegistry(LoadPatterns()...)
}

// Add appends rules after the existing ones. Call it before the scan starts.
func (r *Registry) Add(patterns ...*Pattern) {
	for _, p := range patterns {
		if p == nil || p.Matcher == nil {
			continue
		}
		r.patterns = append(r.patterns, p)
	}
}

func (r *Registry) Len() int {
	return len(r.patterns)
}

// Patterns returns the rules in registration order.
func (r *Registry) Patterns() []*Pattern {
	result := make([]*Pattern, len(r.patterns))
	copy(result, r.patterns)
	return result
}

// Applicable filters the rules for a target platform, keeping their order.
func (r *Registry) Applicable(target finding.Platform) []*Pattern {
	var result []*Pattern
	for _, p := range r.patterns {
		if p.Applies(target) {
			result = append(result, p)
		}
	}
	return result
}
