package social

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfRequest indicates a user targeted themselves with a friend request.
	ErrSelfRequest = errors.New("cannot send a friend request to yourself")
	// ErrDuplicateRequest indicates a pending request already exists for the pair.
	ErrDuplicateRequest = errors.New("friend request already pending")
	// ErrForbidden indicates the actor lacks rights for the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrNotFound indicates a referenced entity is absent.
	ErrNotFound = errors.New("entity not found")
)

// ValidationError reports malformed or out-of-range input. It is locally
// recoverable and maps to a client error at the transport layer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
