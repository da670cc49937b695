// Package apperror defines the domain errors shared by the lookup service,
// its repositories and the presentation layers.
//
// Callers check the kind of failure with errors.Is against the sentinels and
// read the user-facing text from AppError.Message.
package apperror

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// NotFoundMessage is the fixed text shown when a lookup matches nothing.
const NotFoundMessage = "candidate not found"

type AppError struct {
	Err     error  // sentinel kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// CandidateNotFound is returned for every unmatched lookup, whatever the
// query was. The query is deliberately left out of the message.
func CandidateNotFound() *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: NotFoundMessage,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
