package pattern

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"rscanner/internal/finding"
)

// PatternSpec is the YAML form of a user supplied rule.
type PatternSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Regex       string `yaml:"regex"`
	Unless      string `yaml:"unless,omitempty"`
	Then        string `yaml:"then,omitempty"`
	Within      int    `yaml:"within,omitempty"`
	Severity    string `yaml:"severity,omitempty"`
	Platform    string `yaml:"platform,omitempty"`
}

type patternFile struct {
	Patterns []PatternSpec `yaml:"patterns"`
}

// LoadFile reads extra rules from a YAML file. Unlike the built-in rules,
// a bad regex here is reported as an error.
func LoadFile(path string) ([]*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, finding.NewIOError(path, err)
	}
	patterns, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Parse %s", path)
	}
	return patterns, nil
}

// Parse decodes a YAML document with a top-level "patterns" list.
func Parse(data []byte) ([]*Pattern, error) {
	var file patternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	result := make([]*Pattern, 0, len(file.Patterns))
	for i, spec := range file.Patterns {
		p, err := spec.Compile()
		if err != nil {
			return nil, errors.Wrapf(err, "pattern #%d", i+1)
		}
		result = append(result, p)
	}
	return result, nil
}

// Compile validates the rule and builds a Pattern.
// Severity defaults to medium and platform to all.
func (spec PatternSpec) Compile() (*Pattern, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if strings.TrimSpace(spec.Regex) == "" {
		return nil, errors.Errorf("%s: regex is required", name)
	}
	if spec.Within < 0 {
		return nil, errors.Errorf("%s: within must be >= 0", name)
	}

	p := &Pattern{
		Name:        name,
		Description: strings.TrimSpace(spec.Description),
		Severity:    finding.Medium,
		Platform:    finding.All,
		Within:      spec.Within,
	}
	var err error
	if p.Matcher, err = regexp.Compile(spec.Regex); err != nil {
		return nil, errors.Wrapf(err, "%s: regex", name)
	}
	if spec.Unless != "" {
		if p.Unless, err = regexp.Compile(spec.Unless); err != nil {
			return nil, errors.Wrapf(err, "%s: unless", name)
		}
	}
	if spec.Then != "" {
		if p.Then, err = regexp.Compile(spec.Then); err != nil {
			return nil, errors.Wrapf(err, "%s: then", name)
		}
	}
	if spec.Severity != "" {
		if p.Severity, err = finding.ParseSeverity(spec.Severity); err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
	}
	if spec.Platform != "" {
		if p.Platform, err = finding.ParsePlatformStrict(spec.Platform); err != nil {
			return nil, errors.Wrapf(err, "%s", name)
		}
	}
	return p, nil
}
