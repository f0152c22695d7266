package dict

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented indicates a recognized protocol feature the
	// server does not support, such as the "!" database selector. It is
	// deliberately distinct from an unknown-name failure so clients can
	// tell "feature absent" from "malformed input".
	ErrNotImplemented = errors.New("not implemented")

	// ErrDuplicateName indicates a database or strategy registration
	// under a name that is already taken.
	ErrDuplicateName = errors.New("duplicate name")
)

// UnknownDatabaseError indicates a selector naming no known database.
type UnknownDatabaseError struct {
	Name string
}

func (e *UnknownDatabaseError) Error() string {
	return fmt.Sprintf("unknown database %q", e.Name)
}

// UnknownStrategyError indicates an unknown matching strategy name.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", e.Name)
}
