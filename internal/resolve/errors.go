package resolve

import (
	"errors"
	"fmt"
)

// ErrMissingRef is returned when neither an explicit reference nor the
// fallback variable provides a value.
var ErrMissingRef = errors.New("git reference is required")

// ResolutionError reports a failure to derive or publish the git env.
type ResolutionError struct {
	Ref string
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("resolve git env: %v", e.Err)
	}
	return fmt.Sprintf("resolve git env for %q: %v", e.Ref, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
