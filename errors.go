package dictsrv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates invalid configuration options
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrClosed indicates the service has been closed
	ErrClosed = errors.New("service is closed")
)

// LoadError reports a dictionary source that failed to load.
type LoadError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

// Unwrap returns the wrapped error
func (e *LoadError) Unwrap() error {
	return e.Err
}
