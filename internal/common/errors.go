// Package common defines shared sentinel errors used across the library
// sync server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStaleVersion is returned when a version write is not strictly ahead
	// of the stored library version, or when an entity is stamped with a
	// version other than the library's current one.
	ErrStaleVersion = errors.New("stale version")

	// ErrStorageUnavailable marks connectivity failures of the persistence
	// layer. Retryable.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorValidation   = errors.New("validation error")
	ErrMutationFailed = errors.New("mutation failed")

	// ErrLockTimeout is returned when the per-library mutation lock could not
	// be acquired in time. Retryable.
	ErrLockTimeout = errors.New("library is locked by another mutation")

	// ErrVersionConflict is returned when a conditional write names a base
	// version that is no longer current.
	ErrVersionConflict = errors.New("version conflict")
)

// IsRetryable reports whether the caller may retry the failed operation as is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrStorageUnavailable)
}
