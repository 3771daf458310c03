package finding

import "fmt"

// IOError reports a file or directory that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error on %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Cause makes IOError work with errors.Cause from pkg/errors.
func (e *IOError) Cause() error {
	return e.Err
}

// NewIOError returns nil when err is nil.
func NewIOError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Path: path, Err: err}
}
