package scanner

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"rscanner/internal/finding"
)

var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Source is one loaded file, split into lines.
type Source struct {
	Path  string
	Lines []string
}

func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, finding.NewIOError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, finding.NewIOError(path, ErrInvalidUTF8)
	}
	return &Source{
		Path:  path,
		Lines: SplitLines(string(data)),
	}, nil
}

// SplitLines splits on '\n' and drops a trailing '\r' from each line.
// A final newline does not start another line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// Context returns up to two lines either side of lines[i], clipped to the file.
func Context(lines []string, i int) string {
	start := i - 2
	if start < 0 {
		start = 0
	}
	end := i + 3
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}
