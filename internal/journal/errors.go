package journal

import "errors"

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// NoContentMessage is shown when a prompt is requested for an empty entry.
const NoContentMessage = "Please fill out at least one journal entry to generate a prompt."

// ValidationError blocks prompt generation and is never persisted.
type ValidationError struct {
	// Key is the offending field, empty for whole-entry problems.
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ErrNoContent reports an entry without any displayable field.
func ErrNoContent() error {
	return &ValidationError{Message: NoContentMessage}
}
