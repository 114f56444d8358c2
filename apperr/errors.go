// Package apperr holds the error taxonomy shared by the storage, service and HTTP layers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced consumer, provider, service or booking does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument covers malformed numbers and dates, out-of-range ratings and missing ids.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPermissionDenied is returned when the caller does not own the resource it is mutating.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrDataFormat is returned for malformed serialized availability payloads.
	ErrDataFormat = errors.New("data format")
	// ErrAuth covers bad credentials and absent, invalid or revoked tokens.
	ErrAuth = errors.New("unauthenticated")
	// ErrConflict is returned when a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Invalid wraps ErrInvalidArgument with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Denied wraps ErrPermissionDenied with a formatted message.
func Denied(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

// DataFormat wraps ErrDataFormat with a formatted message.
func DataFormat(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataFormat, fmt.Sprintf(format, args...))
}

// Unauthenticated wraps ErrAuth with a formatted message.
func Unauthenticated(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAuth, fmt.Sprintf(format, args...))
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Kind maps an error to a stable label used in logs and response bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrDataFormat):
		return "data_format"
	case errors.Is(err, ErrAuth):
		return "unauthenticated"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
