// Package errors defines the failure kinds signlib reports. Every typed
// error matches one sentinel through errors.Is, so callers can branch on
// the kind without knowing the concrete type.
package errors

import "errors"

// Aliases so callers need only one errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoVideos      = errors.New("no video files found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrCanceled      = errors.New("operation canceled")
	// ErrDeclined means a confirmation was refused, or could not be asked.
	ErrDeclined = errors.New("declined")
)

// IsNotFound reports whether err is ErrNotFound or a *NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is ErrAlreadyExists.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsValidationError reports whether err is invalid input.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsNoVideos reports whether a selection held no video files.
func IsNoVideos(err error) bool { return errors.Is(err, ErrNoVideos) }

// IsQuotaExceeded reports whether storage refused a write for size.
func IsQuotaExceeded(err error) bool { return errors.Is(err, ErrQuotaExceeded) }

// IsCanceled reports whether an operation was canceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsDeclined reports whether a confirmation was declined.
func IsDeclined(err error) bool { return errors.Is(err, ErrDeclined) }
