package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrMissingName        = errors.New("name is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrUnboundedWrite     = errors.New("refusing write without predicate")
	ErrCodeAllocation     = errors.New("could not allocate a unique access code")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrInvalidAmount      = errors.New("amount must not be negative")
	ErrInvalidFileKind    = errors.New("unknown file kind")
	ErrInvalidFileType    = errors.New("file type not allowed")
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingComment     = errors.New("comment is required")
	ErrMissingDeadline    = errors.New("deadline is required")
	ErrInvalidStatus      = errors.New("unknown status")
	ErrInvalidFeedback    = errors.New("feedback must refer to a drawing or an image")
)

// PasswordPolicyError lists the rules a rejected password failed.
// It unwraps to ErrWeakPassword.
type PasswordPolicyError struct {
	Failed []string
}

func (e *PasswordPolicyError) Error() string {
	if len(e.Failed) == 0 {
		return ErrWeakPassword.Error()
	}
	return "password needs " + strings.Join(e.Failed, ", ")
}

func (e *PasswordPolicyError) Unwrap() error { return ErrWeakPassword }
