package services

import (
	"errors"
	"fmt"
)

// Domain errors. The API layer maps these onto HTTP statuses; anything not
// in this set is treated as an internal storage failure, logged server-side
// and reported generically.
var (
	ErrAlreadyExists      = errors.New("account already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode covers both an unknown account and a mismatched code so
	// verification responses cannot be used to enumerate accounts.
	ErrInvalidCode = errors.New("invalid email or code")
	ErrCodeExpired = errors.New("verification code expired")
	ErrNotFound    = errors.New("not found")
)

// DispatchError wraps a notification-send failure. The triggering action is
// safe for the client to retry.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("notification dispatch failed: %v", e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// ValidationError reports malformed or missing input. Always terminal.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
