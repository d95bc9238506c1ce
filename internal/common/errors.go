package common

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrForeignKey     = errors.New("referenced record does not exist")
)

// DomainError carries a client-facing message for one of the error kinds above.
// errors.Is matches both the DomainError value itself and its kind.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &DomainError{Kind: ErrRecordNotFound, Message: message}
}

func Forbidden(message string) error {
	return &DomainError{Kind: ErrForbidden, Message: message}
}

func Conflict(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
