package catalog

import (
	"errors"
	"fmt"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is returned when a payload, filter or sort key is
// rejected. The controller's state is left untouched whenever one is returned.
type ValidationError struct {
	Op      string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(op, message string, cause error) *ValidationError {
	return &ValidationError{Op: op, Message: message, Cause: cause}
}
