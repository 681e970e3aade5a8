package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound signals an insert under a parent id that resolves to
	// no node in the tree.
	ErrParentNotFound = errors.New("parent_not_found")
	// ErrRemoteUnavailable marks a remote-store failure that degraded the
	// operation to local-only persistence.
	ErrRemoteUnavailable = errors.New("remote_unavailable")
)
