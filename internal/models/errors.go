package models

import "errors"

// Storage-level sentinel errors. Repositories translate driver errors into
// these so the service layer never inspects raw storage failures.
var (
	// ErrNotFound means no record matched the lookup predicate. For
	// ownership-scoped lookups this covers both "absent" and "owned by
	// someone else" so existence never leaks across accounts.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is the unique-index violation on users.email. It is
	// the resolution mechanism for concurrent registrations racing past the
	// existence check.
	ErrDuplicateEmail = errors.New("email already in use")
)
