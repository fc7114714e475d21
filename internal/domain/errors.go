package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrAuthorization    = errors.New("not permitted")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidSelection = errors.New("selected date is not one of the proposed dates")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateRequest = errors.New("a pending request to this member already exists")
	ErrUnauthenticated  = errors.New("authentication required")
)

// RemoteError wraps a failure of the database or an external service.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Remote returns err wrapped as a RemoteError unless it already carries one
// of the domain sentinels.
func Remote(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrValidation, ErrAuthorization, ErrInvalidState, ErrInvalidSelection, ErrNotFound, ErrDuplicateRequest, ErrUnauthenticated} {
		if errors.Is(err, known) {
			return err
		}
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
