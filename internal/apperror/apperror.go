// Package apperror defines the error kinds of the CrudNote front and the
// user-visible notices they map to.
package apperror

import (
	"errors"
)

var (
	// ErrRouteNotFound is returned when a path is not in the route table.
	ErrRouteNotFound = errors.New("route not found")
	// ErrAuthRequired is returned when a protected view is requested without a session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrFragmentUnavailable is returned when a view fragment cannot be retrieved.
	ErrFragmentUnavailable = errors.New("view fragment unavailable")
	// ErrCredentialMismatch is returned when no user matches the submitted credentials.
	ErrCredentialMismatch = errors.New("credential mismatch")
	// ErrValidationFailure is returned when required form fields are missing.
	ErrValidationFailure = errors.New("validation failure")
	// ErrUniquenessConflict is returned when a unique user attribute is already taken.
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	// ErrBackendUnavailable is returned for network or service failures of the backend.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

var (
	ErrEmailTaken    = &conflictError{field: "email"}
	ErrUsernameTaken = &conflictError{field: "username"}
)

type conflictError struct {
	field string
}

func (e *conflictError) Error() string {
	return e.field + " already taken"
}

func (e *conflictError) Unwrap() error {
	return ErrUniquenessConflict
}

// Notices shown to the user. The login and registration flows distinguish a
// generic backend failure per operation.
const (
	NoticeLoadFailed         = "Error loading the page."
	NoticeCredentialMismatch = "Incorrect credentials. Please try again."
	NoticeLoginFailed        = "There was an error while trying to sign in."
	NoticeFieldsRequired     = "All fields are required."
	NoticeEmailTaken         = "This email address is already registered."
	NoticeUsernameTaken      = "This username is already in use."
	NoticeRegisterFailed     = "There was an error while trying to register."
	NoticeGeneric            = "Something went wrong. Please try again."
)

// Notice returns the user-visible message for err. Errors resolved by a
// silent redirect return an empty notice.
func Notice(err error) string {
	var n *noticeError
	switch {
	case err == nil, IsSilent(err):
		return ""
	case errors.As(err, &n):
		return n.notice
	case errors.Is(err, ErrEmailTaken):
		return NoticeEmailTaken
	case errors.Is(err, ErrUsernameTaken):
		return NoticeUsernameTaken
	case errors.Is(err, ErrCredentialMismatch):
		return NoticeCredentialMismatch
	case errors.Is(err, ErrValidationFailure):
		return NoticeFieldsRequired
	case errors.Is(err, ErrFragmentUnavailable):
		return NoticeLoadFailed
	default:
		return NoticeGeneric
	}
}

// IsSilent reports whether err is resolved by redirecting instead of telling the user.
func IsSilent(err error) bool {
	return errors.Is(err, ErrRouteNotFound) || errors.Is(err, ErrAuthRequired)
}

type noticeError struct {
	err    error
	notice string
}

func (e *noticeError) Error() string { return e.err.Error() }

func (e *noticeError) Unwrap() error { return e.err }

// WithNotice attaches a specific user-visible notice to err.
func WithNotice(err error, notice string) error {
	if err == nil {
		return nil
	}
	return &noticeError{err: err, notice: notice}
}
